package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"livestock-registry/internal/domain/history"
)

type historyRepo struct {
	mu         sync.RWMutex
	events     map[string][]history.Event             // animalID -> entradas en orden de llegada
	production map[string][]history.ProductionReading // idem
}

func NewHistoryRepo() history.Repository {
	return &historyRepo{
		events:     make(map[string][]history.Event),
		production: make(map[string][]history.ProductionReading),
	}
}

func (r *historyRepo) AppendEvent(ctx context.Context, e history.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" || strings.TrimSpace(e.AnimalID) == "" {
		return errors.New("event id and animal id required")
	}
	r.events[e.AnimalID] = append(r.events[e.AnimalID], e)
	return nil
}

func (r *historyRepo) ListEventsByAnimal(ctx context.Context, animalID string) ([]history.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.events[animalID]
	out := make([]history.Event, len(src))
	copy(out, src)
	return out, nil
}

func (r *historyRepo) AppendProduction(ctx context.Context, p history.ProductionReading) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.AnimalID) == "" {
		return errors.New("reading id and animal id required")
	}
	r.production[p.AnimalID] = append(r.production[p.AnimalID], p)
	return nil
}

func (r *historyRepo) ListProductionByAnimal(ctx context.Context, animalID string) ([]history.ProductionReading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.production[animalID]
	out := make([]history.ProductionReading, len(src))
	copy(out, src)
	return out, nil
}
