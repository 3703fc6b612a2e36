package remote

import (
	"context"
	"net/http"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/errs"
)

type AnimalsRepo struct {
	c *Client
}

func NewAnimalsRepo(c *Client) *AnimalsRepo {
	return &AnimalsRepo{c: c}
}

type animalDTO struct {
	ID              string `json:"id"`
	CodigoArete     string `json:"codigo_arete"`
	Alias           string `json:"alias,omitempty"`
	EspecieID       string `json:"especie_id"`
	RazaID          string `json:"raza_id,omitempty"`
	Sexo            string `json:"sexo"`
	FechaNacimiento string `json:"fecha_nacimiento,omitempty"`
	UbicacionID     string `json:"ubicacion_id"`
	Origen          string `json:"origen,omitempty"`
	PadreID         string `json:"padre_id,omitempty"`
	MadreID         string `json:"madre_id,omitempty"`
	FotoURL         string `json:"foto_url,omitempty"`
	Activo          bool   `json:"activo"`
	CreadoEn        string `json:"creado_en,omitempty"`
	ActualizadoEn   string `json:"actualizado_en,omitempty"`
}

func toAnimalDTO(a animals.Animal) animalDTO {
	return animalDTO{
		ID:              a.ID,
		CodigoArete:     a.EarTag,
		Alias:           a.Alias,
		EspecieID:       a.SpeciesID,
		RazaID:          a.BreedID,
		Sexo:            string(a.Sex),
		FechaNacimiento: formatDate(a.BirthDate),
		UbicacionID:     a.LocationID,
		Origen:          a.Origin,
		PadreID:         a.FatherID,
		MadreID:         a.MotherID,
		FotoURL:         a.PhotoRef,
		Activo:          a.Active,
	}
}

func fromAnimalDTO(d animalDTO) animals.Animal {
	return animals.Animal{
		ID:         d.ID,
		EarTag:     d.CodigoArete,
		Alias:      d.Alias,
		SpeciesID:  d.EspecieID,
		BreedID:    d.RazaID,
		Sex:        animals.Sex(d.Sexo),
		BirthDate:  parseDate(d.FechaNacimiento),
		LocationID: d.UbicacionID,
		Origin:     d.Origen,
		FatherID:   d.PadreID,
		MotherID:   d.MadreID,
		PhotoRef:   d.FotoURL,
		Active:     d.Activo,
		CreatedAt:  parseTimestamp(d.CreadoEn),
		UpdatedAt:  parseTimestamp(d.ActualizadoEn),
	}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	err := r.c.http.DoJSON(ctx, http.MethodPost, "/animales", nil, toAnimalDTO(a), nil)
	return wrapErr("create animal", err)
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	err := r.c.http.DoJSON(ctx, http.MethodPut, "/animales/"+a.ID, nil, toAnimalDTO(a), nil)
	return wrapErr("update animal", err)
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	var d animalDTO
	if err := r.c.http.DoJSON(ctx, http.MethodGet, "/animales/"+id, nil, nil, &d); err != nil {
		return animals.Animal{}, wrapErr("get animal", err)
	}
	return fromAnimalDTO(d), nil
}

func (r *AnimalsRepo) GetByEarTag(ctx context.Context, earTag string) (animals.Animal, error) {
	// El servicio no busca por arete: se recorre el padrón completo,
	// inactivos incluidos, porque el arete no se recicla tras la baja.
	items, err := r.List(ctx, animals.Filter{IncludeInactive: true})
	if err != nil {
		return animals.Animal{}, err
	}
	for _, a := range items {
		if a.EarTag == earTag {
			return a, nil
		}
	}
	return animals.Animal{}, errs.ErrNotFound
}

func (r *AnimalsRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	path := "/animales"
	if f.IncludeInactive {
		path += "?incluir_inactivos=true"
	}

	var dtos []animalDTO
	if err := r.c.http.DoJSON(ctx, http.MethodGet, path, nil, nil, &dtos); err != nil {
		return nil, wrapErr("list animals", err)
	}

	out := make([]animals.Animal, 0, len(dtos))
	for _, d := range dtos {
		a := fromAnimalDTO(d)
		if f.Sex != "" && a.Sex != f.Sex {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}
