package catalog

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	// Los catálogos cambian poco; un TTL corto mantiene snapshots
	// consistentes entre workflows abiertos sin re-fetch por diálogo.
	cacheTTL     = 5 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Service es el Catalog Store del proceso: una sola instancia inyectada a
// todos los workflows, con cache de snapshots y Refresh explícito.
type Service struct {
	repo  Repository
	cache *gocache.Cache
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(cacheTTL, cacheCleanup),
	}
}

// Refresh invalida todos los snapshots cacheados; la próxima lectura va al
// repositorio.
func (s *Service) Refresh() {
	s.cache.Flush()
}

func (s *Service) ListSpecies(ctx context.Context) ([]Species, error) {
	if v, ok := s.cache.Get("species"); ok {
		return v.([]Species), nil
	}
	items, err := s.repo.ListSpecies(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault("species", items)
	return items, nil
}

// ListBreeds devuelve las razas de la especie. Para speciesID vacío o
// desconocido devuelve la lista vacía, nunca error: es el caso normal
// mientras el formulario todavía no tiene especie elegida.
func (s *Service) ListBreeds(ctx context.Context, speciesID string) ([]Breed, error) {
	speciesID = strings.TrimSpace(speciesID)
	if speciesID == "" {
		return []Breed{}, nil
	}
	key := "breeds:" + speciesID
	if v, ok := s.cache.Get(key); ok {
		return v.([]Breed), nil
	}
	items, err := s.repo.ListBreeds(ctx, speciesID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Breed{}
	}
	s.cache.SetDefault(key, items)
	return items, nil
}

func (s *Service) ListLocations(ctx context.Context) ([]Location, error) {
	if v, ok := s.cache.Get("locations"); ok {
		return v.([]Location), nil
	}
	items, err := s.repo.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault("locations", items)
	return items, nil
}

func (s *Service) ListEventTypes(ctx context.Context) ([]EventType, error) {
	if v, ok := s.cache.Get("event_types"); ok {
		return v.([]EventType), nil
	}
	items, err := s.repo.ListEventTypes(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault("event_types", items)
	return items, nil
}

// Los lookups puntuales van directo al repositorio: los usan las
// validaciones y no conviene servirles referencia vencida.

func (s *Service) GetSpecies(ctx context.Context, id string) (Species, error) {
	return s.repo.GetSpecies(ctx, strings.TrimSpace(id))
}

func (s *Service) GetBreed(ctx context.Context, id string) (Breed, error) {
	return s.repo.GetBreed(ctx, strings.TrimSpace(id))
}

func (s *Service) GetLocation(ctx context.Context, id string) (Location, error) {
	return s.repo.GetLocation(ctx, strings.TrimSpace(id))
}

func (s *Service) GetEventType(ctx context.Context, id string) (EventType, error) {
	return s.repo.GetEventType(ctx, strings.TrimSpace(id))
}
