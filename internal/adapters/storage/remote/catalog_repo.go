package remote

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"livestock-registry/internal/domain/catalog"
	"livestock-registry/internal/domain/errs"
)

// CatalogRepo lee los catálogos del servicio remoto. El servicio no expone
// lookups puntuales, así que los Get* resuelven listando y buscando.
type CatalogRepo struct {
	c *Client
}

func NewCatalogRepo(c *Client) *CatalogRepo {
	return &CatalogRepo{c: c}
}

type especieDTO struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	EsLechera bool   `json:"es_lechera"`
}

type razaDTO struct {
	ID        string `json:"id"`
	EspecieID string `json:"especie_id"`
	Nombre    string `json:"nombre"`
}

type ubicacionDTO struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

type tipoEventoDTO struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Categoria string `json:"categoria"`
}

func (r *CatalogRepo) ListSpecies(ctx context.Context) ([]catalog.Species, error) {
	var dtos []especieDTO
	if err := r.c.http.DoJSON(ctx, http.MethodGet, "/especies", nil, nil, &dtos); err != nil {
		return nil, wrapErr("list species", err)
	}

	out := make([]catalog.Species, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, catalog.Species{ID: d.ID, Name: d.Nombre, MilkProducer: d.EsLechera})
	}
	return out, nil
}

func (r *CatalogRepo) ListBreeds(ctx context.Context, speciesID string) ([]catalog.Breed, error) {
	out := make([]catalog.Breed, 0)
	if strings.TrimSpace(speciesID) == "" {
		return out, nil
	}

	var dtos []razaDTO
	err := r.c.http.DoJSON(ctx, http.MethodGet, "/razas/"+speciesID, nil, nil, &dtos)
	if err != nil {
		// Especie desconocida => opciones vacías, mismo contrato que memoria
		if errors.Is(wrapErr("list breeds", err), errs.ErrNotFound) {
			return out, nil
		}
		return nil, wrapErr("list breeds", err)
	}

	for _, d := range dtos {
		out = append(out, catalog.Breed{ID: d.ID, SpeciesID: d.EspecieID, Name: d.Nombre})
	}
	return out, nil
}

func (r *CatalogRepo) ListLocations(ctx context.Context) ([]catalog.Location, error) {
	var dtos []ubicacionDTO
	if err := r.c.http.DoJSON(ctx, http.MethodGet, "/ubicaciones", nil, nil, &dtos); err != nil {
		return nil, wrapErr("list locations", err)
	}

	out := make([]catalog.Location, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, catalog.Location{ID: d.ID, Name: d.Nombre})
	}
	return out, nil
}

func (r *CatalogRepo) ListEventTypes(ctx context.Context) ([]catalog.EventType, error) {
	var dtos []tipoEventoDTO
	if err := r.c.http.DoJSON(ctx, http.MethodGet, "/tipos-evento", nil, nil, &dtos); err != nil {
		return nil, wrapErr("list event types", err)
	}

	out := make([]catalog.EventType, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, catalog.EventType{ID: d.ID, Name: d.Nombre, Category: d.Categoria})
	}
	return out, nil
}

func (r *CatalogRepo) GetSpecies(ctx context.Context, id string) (catalog.Species, error) {
	items, err := r.ListSpecies(ctx)
	if err != nil {
		return catalog.Species{}, err
	}
	for _, s := range items {
		if s.ID == id {
			return s, nil
		}
	}
	return catalog.Species{}, errs.ErrNotFound
}

func (r *CatalogRepo) GetBreed(ctx context.Context, id string) (catalog.Breed, error) {
	// Sin endpoint de raza por id: el único camino es por especie, y acá no
	// la conocemos. La validación de razas usa ListBreeds, no este lookup.
	return catalog.Breed{}, errs.ErrNotFound
}

func (r *CatalogRepo) GetLocation(ctx context.Context, id string) (catalog.Location, error) {
	items, err := r.ListLocations(ctx)
	if err != nil {
		return catalog.Location{}, err
	}
	for _, l := range items {
		if l.ID == id {
			return l, nil
		}
	}
	return catalog.Location{}, errs.ErrNotFound
}

func (r *CatalogRepo) GetEventType(ctx context.Context, id string) (catalog.EventType, error) {
	items, err := r.ListEventTypes(ctx)
	if err != nil {
		return catalog.EventType{}, err
	}
	for _, t := range items {
		if t.ID == id {
			return t, nil
		}
	}
	return catalog.EventType{}, errs.ErrNotFound
}
