package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/errs"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, ear_tag, alias,
	species_id, breed_id, sex,
	birth_date, location_id, origin,
	father_id, mother_id, photo_ref,
	active, created_at, updated_at
`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		a.ID,
		a.EarTag,
		a.Alias,
		a.SpeciesID,
		toNullString(a.BreedID),
		string(a.Sex),
		toNullDate(a.BirthDate),
		a.LocationID,
		a.Origin,
		toNullString(a.FatherID),
		toNullString(a.MotherID),
		a.PhotoRef,
		a.Active,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			alias = $2,
			species_id = $3,
			breed_id = $4,
			sex = $5,
			birth_date = $6,
			location_id = $7,
			origin = $8,
			father_id = $9,
			mother_id = $10,
			photo_ref = $11,
			active = $12,
			updated_at = $13
		WHERE id = $1
	`,
		a.ID,
		a.Alias,
		a.SpeciesID,
		toNullString(a.BreedID),
		string(a.Sex),
		toNullDate(a.BirthDate),
		a.LocationID,
		a.Origin,
		toNullString(a.FatherID),
		toNullString(a.MotherID),
		a.PhotoRef,
		a.Active,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, errs.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE id = $1
	`, id)

	return scanAnimal(row.Scan)
}

func (r *AnimalsRepo) GetByEarTag(ctx context.Context, earTag string) (animals.Animal, error) {
	earTag = strings.TrimSpace(earTag)
	if earTag == "" {
		return animals.Animal{}, errs.ErrNotFound
	}

	// Sin filtro por active: el arete no se recicla ni tras la baja
	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE ear_tag = $1
	`, earTag)

	return scanAnimal(row.Scan)
}

func (r *AnimalsRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	q := `SELECT ` + animalColumns + ` FROM animals WHERE 1=1`
	args := make([]any, 0, 2)
	if !f.IncludeInactive {
		q += ` AND active = true`
	}
	if f.Sex != "" {
		args = append(args, string(f.Sex))
		q += ` AND sex = $1`
	}
	q += ` ORDER BY ear_tag ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAnimal(scan func(dest ...any) error) (animals.Animal, error) {
	var a animals.Animal
	var sex string
	var breedID, fatherID, motherID sql.NullString
	var bd sql.NullTime

	if err := scan(
		&a.ID,
		&a.EarTag,
		&a.Alias,
		&a.SpeciesID,
		&breedID,
		&sex,
		&bd,
		&a.LocationID,
		&a.Origin,
		&fatherID,
		&motherID,
		&a.PhotoRef,
		&a.Active,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return animals.Animal{}, errs.ErrNotFound
		}
		return animals.Animal{}, err
	}

	a.Sex = animals.Sex(sex)
	a.BreedID = breedID.String
	a.FatherID = fatherID.String
	a.MotherID = motherID.String
	if bd.Valid {
		t := bd.Time
		a.BirthDate = &t
	}

	return a, nil
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// refs opcionales (raza, padre, madre) van como NULL, no string vacío,
// para que las FK no se quejen
func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
