package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	// GetByEarTag busca entre activos E inactivos: la unicidad del arete
	// cubre también animales dados de baja.
	GetByEarTag(ctx context.Context, earTag string) (Animal, error)
	List(ctx context.Context, f Filter) ([]Animal, error)
}
