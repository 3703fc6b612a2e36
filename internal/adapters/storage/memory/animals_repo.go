package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/errs"
)

type animalsRepo struct {
	mu   sync.RWMutex
	byID map[string]animals.Animal
}

func NewAnimalsRepo() animals.Repository {
	return &animalsRepo{
		byID: make(map[string]animals.Animal),
	}
}

func (r *animalsRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *animalsRepo) Update(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; !exists {
		return errs.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *animalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, errs.ErrNotFound
	}
	return a, nil
}

func (r *animalsRepo) GetByEarTag(ctx context.Context, earTag string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Busca entre activos e inactivos: el arete nunca se recicla
	for _, a := range r.byID {
		if a.EarTag == earTag {
			return a, nil
		}
	}
	return animals.Animal{}, errs.ErrNotFound
}

func (r *animalsRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if !f.IncludeInactive && !a.Active {
			continue
		}
		if f.Sex != "" && a.Sex != f.Sex {
			continue
		}
		out = append(out, a)
	}

	// Orden estable por arete (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].EarTag < out[j].EarTag
	})

	return out, nil
}
