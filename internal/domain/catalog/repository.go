package catalog

import "context"

// Repository expone los catálogos administrados externamente.
// Solo lectura: este core no tiene contrato de mutación sobre referencia.
type Repository interface {
	ListSpecies(ctx context.Context) ([]Species, error)
	// ListBreeds devuelve la lista vacía (no error) para speciesID vacío o
	// desconocido: es el caso normal antes de elegir especie.
	ListBreeds(ctx context.Context, speciesID string) ([]Breed, error)
	ListLocations(ctx context.Context) ([]Location, error)
	ListEventTypes(ctx context.Context) ([]EventType, error)

	GetSpecies(ctx context.Context, id string) (Species, error)
	GetBreed(ctx context.Context, id string) (Breed, error)
	GetLocation(ctx context.Context, id string) (Location, error)
	GetEventType(ctx context.Context, id string) (EventType, error)
}
