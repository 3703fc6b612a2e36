package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"livestock-registry/internal/domain/catalog"
	"livestock-registry/internal/domain/errs"
	"livestock-registry/internal/ports/photos"

	"github.com/google/uuid"
)

// Catalogs es lo que el registro necesita del Catalog Store para validar.
// Lo satisface *catalog.Service.
type Catalogs interface {
	GetSpecies(ctx context.Context, id string) (catalog.Species, error)
	GetLocation(ctx context.Context, id string) (catalog.Location, error)
	ListBreeds(ctx context.Context, speciesID string) ([]catalog.Breed, error)
}

type Service struct {
	repo     Repository
	catalogs Catalogs
	photos   photos.Store // opcional; nil = sin storage de fotos
	now      func() time.Time
}

func NewService(repo Repository, catalogs Catalogs, photoStore photos.Store) *Service {
	return &Service{
		repo:     repo,
		catalogs: catalogs,
		photos:   photoStore,
		now:      time.Now,
	}
}

// PhotoUpload es el blob transitorio "pendiente de subir" que acompaña un
// alta/edición. El core solo lo pasa al storage y guarda la referencia.
type PhotoUpload struct {
	Data        []byte
	ContentType string
}

type Input struct {
	EarTag     string
	Alias      string
	SpeciesID  string
	BreedID    string
	Sex        Sex
	BirthDate  *time.Time
	LocationID string
	Origin     string
	FatherID   string
	MotherID   string
	Photo      *PhotoUpload
}

func (in *Input) normalize() {
	in.EarTag = strings.TrimSpace(in.EarTag)
	in.Alias = strings.TrimSpace(in.Alias)
	in.SpeciesID = strings.TrimSpace(in.SpeciesID)
	in.BreedID = strings.TrimSpace(in.BreedID)
	in.LocationID = strings.TrimSpace(in.LocationID)
	in.Origin = strings.TrimSpace(in.Origin)
	in.FatherID = strings.TrimSpace(in.FatherID)
	in.MotherID = strings.TrimSpace(in.MotherID)
}

// Register da de alta un animal. Valida todo el input de una sola pasada y
// devuelve *errs.ValidationError con TODAS las violaciones, o
// *errs.ConflictError si el arete ya existe (activo o inactivo).
func (s *Service) Register(ctx context.Context, in Input) (Animal, error) {
	in.normalize()

	v := &errs.ValidationError{}
	if in.EarTag == "" {
		v.Add("ear_tag", "el código de arete es obligatorio")
	}
	if err := s.validateCommon(ctx, v, in, ""); err != nil {
		return Animal{}, err
	}
	if err := v.OrNil(); err != nil {
		return Animal{}, err
	}

	// Unicidad del arete sobre activos e inactivos.
	if _, err := s.repo.GetByEarTag(ctx, in.EarTag); err == nil {
		return Animal{}, &errs.ConflictError{
			Field:   "ear_tag",
			Message: "ya existe un animal con el código de arete " + in.EarTag,
		}
	} else if !errors.Is(err, errs.ErrNotFound) {
		return Animal{}, err
	}

	now := s.now()
	a := Animal{
		ID:         uuid.NewString(),
		EarTag:     in.EarTag,
		Alias:      in.Alias,
		SpeciesID:  in.SpeciesID,
		BreedID:    in.BreedID,
		Sex:        in.Sex,
		BirthDate:  in.BirthDate,
		LocationID: in.LocationID,
		Origin:     in.Origin,
		FatherID:   in.FatherID,
		MotherID:   in.MotherID,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ref, err := s.storePhoto(ctx, a.ID, in.Photo)
	if err != nil {
		return Animal{}, err
	}
	a.PhotoRef = ref

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// Update reemplaza todos los campos editables del animal. El arete es
// inmutable: mandar uno distinto es violación, no conflicto. La genealogía
// se re-valida completa aunque los padres no cambien, porque sexo/especie
// del propio animal pueden haber cambiado.
func (s *Service) Update(ctx context.Context, id string, in Input) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, errs.ErrNotFound
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	in.normalize()

	v := &errs.ValidationError{}
	if in.EarTag != "" && in.EarTag != current.EarTag {
		v.Add("ear_tag", "el código de arete no puede modificarse")
	}
	if err := s.validateCommon(ctx, v, in, id); err != nil {
		return Animal{}, err
	}
	if err := v.OrNil(); err != nil {
		return Animal{}, err
	}

	updated := current
	updated.Alias = in.Alias
	updated.SpeciesID = in.SpeciesID
	updated.BreedID = in.BreedID
	updated.Sex = in.Sex
	updated.BirthDate = in.BirthDate
	updated.LocationID = in.LocationID
	updated.Origin = in.Origin
	updated.FatherID = in.FatherID
	updated.MotherID = in.MotherID
	updated.UpdatedAt = s.now()

	if in.Photo != nil {
		ref, err := s.storePhoto(ctx, updated.ID, in.Photo)
		if err != nil {
			return Animal{}, err
		}
		updated.PhotoRef = ref
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return Animal{}, err
	}
	return updated, nil
}

// Deactivate es la baja lógica. Idempotente: dar de baja un animal ya
// inactivo es no-op exitoso.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !a.Active {
		return nil
	}
	a.Active = false
	a.UpdatedAt = s.now()
	return s.repo.Update(ctx, a)
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context, f Filter) ([]Animal, error) {
	return s.repo.List(ctx, f)
}

// GetDetails devuelve el animal enriquecido: nombres de catálogo, padres
// resueltos en tiempo de lectura (referencia colgante => Known=false) y edad.
func (s *Service) GetDetails(ctx context.Context, id string) (Details, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Details{}, err
	}

	d := Details{Animal: a}
	if sp, err := s.catalogs.GetSpecies(ctx, a.SpeciesID); err == nil {
		d.SpeciesName = sp.Name
	}
	if a.BreedID != "" {
		if breeds, err := s.catalogs.ListBreeds(ctx, a.SpeciesID); err == nil {
			for _, b := range breeds {
				if b.ID == a.BreedID {
					d.BreedName = b.Name
					break
				}
			}
		}
	}
	if loc, err := s.catalogs.GetLocation(ctx, a.LocationID); err == nil {
		d.LocationName = loc.Name
	}

	d.Father = s.resolveParent(ctx, a.FatherID)
	d.Mother = s.resolveParent(ctx, a.MotherID)
	d.AgeYears, d.AgeKnown = AgeYears(a.BirthDate, s.now())

	return d, nil
}

func (s *Service) resolveParent(ctx context.Context, parentID string) ParentRef {
	if parentID == "" {
		return ParentRef{Known: false}
	}
	p, err := s.repo.GetByID(ctx, parentID)
	if err != nil {
		// Referencia colgante: degradar a "desconocido", nunca fallar la vista.
		return ParentRef{ID: parentID, Known: false}
	}
	return ParentRef{ID: p.ID, EarTag: p.EarTag, Alias: p.Alias, Known: true}
}

// validateCommon acumula en v las violaciones compartidas entre alta y
// edición. selfID va vacío en el alta (el animal aún no tiene identidad).
// Devuelve error solo ante fallas de infraestructura.
func (s *Service) validateCommon(ctx context.Context, v *errs.ValidationError, in Input, selfID string) error {
	if in.SpeciesID == "" {
		v.Add("species_id", "la especie es obligatoria")
	} else if _, err := s.catalogs.GetSpecies(ctx, in.SpeciesID); err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		v.Add("species_id", "la especie no existe")
	}

	if !in.Sex.Valid() {
		v.Add("sex", "el sexo debe ser M o H")
	}
	if in.BirthDate == nil {
		v.Add("birth_date", "la fecha de nacimiento es obligatoria")
	}

	if in.LocationID == "" {
		v.Add("location_id", "la ubicación actual es obligatoria")
	} else if _, err := s.catalogs.GetLocation(ctx, in.LocationID); err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		v.Add("location_id", "la ubicación no existe")
	}

	// La raza se valida por pertenencia a las opciones de la especie
	// elegida: cubre "no existe" y "pertenece a otra especie" a la vez.
	if in.BreedID != "" && in.SpeciesID != "" && !v.Has("species_id") {
		breeds, err := s.catalogs.ListBreeds(ctx, in.SpeciesID)
		if err != nil {
			return err
		}
		found := false
		for _, b := range breeds {
			if b.ID == in.BreedID {
				found = true
				break
			}
		}
		if !found {
			v.Add("breed_id", "la raza no pertenece a la especie seleccionada")
		}
	}

	if err := s.validateParent(ctx, v, "father_id", in.FatherID, selfID, SexMale, "el padre debe ser macho"); err != nil {
		return err
	}
	if err := s.validateParent(ctx, v, "mother_id", in.MotherID, selfID, SexFemale, "la madre debe ser hembra"); err != nil {
		return err
	}
	return nil
}

func (s *Service) validateParent(ctx context.Context, v *errs.ValidationError, field, parentID, selfID string, wantSex Sex, sexMsg string) error {
	if parentID == "" {
		return nil
	}
	if selfID != "" && parentID == selfID {
		v.Add(field, "un animal no puede ser su propio padre o madre")
		return nil
	}

	p, err := s.repo.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			v.Add(field, "el animal referenciado no existe")
			return nil
		}
		return err
	}
	if p.Sex != wantSex {
		v.Add(field, sexMsg)
	}

	// Ciclos de ancestría: el animal editado no puede aparecer entre los
	// ancestros del padre/madre propuesto.
	if selfID != "" {
		isAncestor, err := s.isAncestor(ctx, selfID, parentID)
		if err != nil {
			return err
		}
		if isAncestor {
			v.Add(field, "un animal no puede ser su propio ancestro")
		}
	}
	return nil
}

// isAncestor camina las aristas padre/madre hacia arriba desde startID y
// responde si targetID aparece en el recorrido. El set visited corta ciclos
// preexistentes en datos sucios.
func (s *Service) isAncestor(ctx context.Context, targetID, startID string) (bool, error) {
	visited := map[string]struct{}{}
	queue := []string{startID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if id == "" {
			continue
		}
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}

		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				continue // referencia colgante: no hay más camino por acá
			}
			return false, err
		}
		if a.FatherID == targetID || a.MotherID == targetID {
			return true, nil
		}
		queue = append(queue, a.FatherID, a.MotherID)
	}
	return false, nil
}

func (s *Service) storePhoto(ctx context.Context, animalID string, photo *PhotoUpload) (string, error) {
	if photo == nil || len(photo.Data) == 0 {
		return "", nil
	}
	if s.photos == nil {
		return "", errors.New("photo storage not configured")
	}
	return s.photos.Save(ctx, animalID, photo.Data, photo.ContentType)
}
