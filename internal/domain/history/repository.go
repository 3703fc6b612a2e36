package history

import "context"

// Repository es append-only: no existe Update ni Delete a propósito.
type Repository interface {
	AppendEvent(ctx context.Context, e Event) error
	ListEventsByAnimal(ctx context.Context, animalID string) ([]Event, error)

	AppendProduction(ctx context.Context, p ProductionReading) error
	ListProductionByAnimal(ctx context.Context, animalID string) ([]ProductionReading, error)
}
