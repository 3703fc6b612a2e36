package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"livestock-registry/internal/domain/catalog"
	"livestock-registry/internal/domain/errs"
)

type catalogRepo struct {
	mu         sync.RWMutex
	species    map[string]catalog.Species
	breeds     map[string]catalog.Breed
	locations  map[string]catalog.Location
	eventTypes map[string]catalog.EventType
}

// NewCatalogRepo arranca con los catálogos de referencia sembrados: en dev
// no hay servicio externo que los administre.
func NewCatalogRepo() catalog.Repository {
	r := &catalogRepo{
		species:    make(map[string]catalog.Species),
		breeds:     make(map[string]catalog.Breed),
		locations:  make(map[string]catalog.Location),
		eventTypes: make(map[string]catalog.EventType),
	}
	r.seed()
	return r
}

func (r *catalogRepo) seed() {
	for _, s := range []catalog.Species{
		{ID: "sp-bovino", Name: "Bovino", MilkProducer: true},
		{ID: "sp-caprino", Name: "Caprino", MilkProducer: true},
		{ID: "sp-ovino", Name: "Ovino", MilkProducer: false},
		{ID: "sp-porcino", Name: "Porcino", MilkProducer: false},
		{ID: "sp-equino", Name: "Equino", MilkProducer: false},
	} {
		r.species[s.ID] = s
	}

	for _, b := range []catalog.Breed{
		{ID: "br-holstein", SpeciesID: "sp-bovino", Name: "Holstein"},
		{ID: "br-jersey", SpeciesID: "sp-bovino", Name: "Jersey"},
		{ID: "br-brahman", SpeciesID: "sp-bovino", Name: "Brahman"},
		{ID: "br-saanen", SpeciesID: "sp-caprino", Name: "Saanen"},
		{ID: "br-criolla", SpeciesID: "sp-caprino", Name: "Criolla"},
		{ID: "br-pelibuey", SpeciesID: "sp-ovino", Name: "Pelibuey"},
	} {
		r.breeds[b.ID] = b
	}

	for _, l := range []catalog.Location{
		{ID: "loc-corral-1", Name: "Corral 1"},
		{ID: "loc-corral-2", Name: "Corral 2"},
		{ID: "loc-potrero-norte", Name: "Potrero Norte"},
		{ID: "loc-establo", Name: "Establo"},
	} {
		r.locations[l.ID] = l
	}

	for _, t := range []catalog.EventType{
		{ID: "et-vacunacion", Name: "Vacunación", Category: "Salud"},
		{ID: "et-desparasitacion", Name: "Desparasitación", Category: "Salud"},
		{ID: "et-tratamiento", Name: "Tratamiento", Category: "Salud"},
		{ID: "et-celo", Name: "Celo", Category: "Reproducción"},
		{ID: "et-monta", Name: "Monta", Category: "Reproducción"},
		{ID: "et-parto", Name: "Parto", Category: "Reproducción"},
		{ID: "et-pesaje", Name: "Pesaje", Category: "General"},
		{ID: "et-traslado", Name: "Traslado", Category: "General"},
	} {
		r.eventTypes[t.ID] = t
	}
}

func (r *catalogRepo) ListSpecies(ctx context.Context) ([]catalog.Species, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Species, 0, len(r.species))
	for _, s := range r.species {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *catalogRepo) ListBreeds(ctx context.Context, speciesID string) ([]catalog.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Breed, 0)
	if strings.TrimSpace(speciesID) == "" {
		return out, nil
	}
	for _, b := range r.breeds {
		if b.SpeciesID == speciesID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *catalogRepo) ListLocations(ctx context.Context) ([]catalog.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Location, 0, len(r.locations))
	for _, l := range r.locations {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *catalogRepo) ListEventTypes(ctx context.Context) ([]catalog.EventType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.EventType, 0, len(r.eventTypes))
	for _, t := range r.eventTypes {
		out = append(out, t)
	}
	// Orden por categoría y nombre para que la agrupación sea estable
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *catalogRepo) GetSpecies(ctx context.Context, id string) (catalog.Species, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.species[id]
	if !ok {
		return catalog.Species{}, errs.ErrNotFound
	}
	return s, nil
}

func (r *catalogRepo) GetBreed(ctx context.Context, id string) (catalog.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.breeds[id]
	if !ok {
		return catalog.Breed{}, errs.ErrNotFound
	}
	return b, nil
}

func (r *catalogRepo) GetLocation(ctx context.Context, id string) (catalog.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.locations[id]
	if !ok {
		return catalog.Location{}, errs.ErrNotFound
	}
	return l, nil
}

func (r *catalogRepo) GetEventType(ctx context.Context, id string) (catalog.EventType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.eventTypes[id]
	if !ok {
		return catalog.EventType{}, errs.ErrNotFound
	}
	return t, nil
}
