package postgres

import (
	"context"
	"database/sql"
	"strings"

	"livestock-registry/internal/domain/catalog"
	"livestock-registry/internal/domain/errs"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (r *CatalogRepo) ListSpecies(ctx context.Context) ([]catalog.Species, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, milk_producer
		FROM species
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Species, 0)
	for rows.Next() {
		var s catalog.Species
		if err := rows.Scan(&s.ID, &s.Name, &s.MilkProducer); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) ListBreeds(ctx context.Context, speciesID string) ([]catalog.Breed, error) {
	out := make([]catalog.Breed, 0)
	if strings.TrimSpace(speciesID) == "" {
		return out, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, species_id, name
		FROM breeds
		WHERE species_id = $1
		ORDER BY name ASC
	`, speciesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b catalog.Breed
		if err := rows.Scan(&b.ID, &b.SpeciesID, &b.Name); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) ListLocations(ctx context.Context) ([]catalog.Location, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name
		FROM locations
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Location, 0)
	for rows.Next() {
		var l catalog.Location
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) ListEventTypes(ctx context.Context) ([]catalog.EventType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category
		FROM event_types
		ORDER BY category ASC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.EventType, 0)
	for rows.Next() {
		var t catalog.EventType
		if err := rows.Scan(&t.ID, &t.Name, &t.Category); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) GetSpecies(ctx context.Context, id string) (catalog.Species, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.Species{}, errs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, milk_producer
		FROM species
		WHERE id = $1
	`, id)

	var s catalog.Species
	if err := row.Scan(&s.ID, &s.Name, &s.MilkProducer); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Species{}, errs.ErrNotFound
		}
		return catalog.Species{}, err
	}
	return s, nil
}

func (r *CatalogRepo) GetBreed(ctx context.Context, id string) (catalog.Breed, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.Breed{}, errs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, species_id, name
		FROM breeds
		WHERE id = $1
	`, id)

	var b catalog.Breed
	if err := row.Scan(&b.ID, &b.SpeciesID, &b.Name); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Breed{}, errs.ErrNotFound
		}
		return catalog.Breed{}, err
	}
	return b, nil
}

func (r *CatalogRepo) GetLocation(ctx context.Context, id string) (catalog.Location, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.Location{}, errs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name
		FROM locations
		WHERE id = $1
	`, id)

	var l catalog.Location
	if err := row.Scan(&l.ID, &l.Name); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Location{}, errs.ErrNotFound
		}
		return catalog.Location{}, err
	}
	return l, nil
}

func (r *CatalogRepo) GetEventType(ctx context.Context, id string) (catalog.EventType, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.EventType{}, errs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, category
		FROM event_types
		WHERE id = $1
	`, id)

	var t catalog.EventType
	if err := row.Scan(&t.ID, &t.Name, &t.Category); err != nil {
		if err == sql.ErrNoRows {
			return catalog.EventType{}, errs.ErrNotFound
		}
		return catalog.EventType{}, err
	}
	return t, nil
}
