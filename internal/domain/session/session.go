package session

import (
	"context"
	"errors"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/catalog"

	"golang.org/x/sync/errgroup"
)

// Mode distingue alta de edición. La vista de solo lectura no necesita
// sesión: va directo a GetDetails.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

type State string

const (
	StateIdle       State = "idle"
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateLoadFailed State = "load_failed"
	StateSubmitting State = "submitting"
	StateDone       State = "done"
)

// Registry es lo que la sesión necesita del registro de animales.
// Lo satisface *animals.Service.
type Registry interface {
	Register(ctx context.Context, in animals.Input) (animals.Animal, error)
	Update(ctx context.Context, id string, in animals.Input) (animals.Animal, error)
	GetByID(ctx context.Context, id string) (animals.Animal, error)
	List(ctx context.Context, f animals.Filter) ([]animals.Animal, error)
}

// Catalogs es lo que la sesión necesita del Catalog Store.
// Lo satisface *catalog.Service.
type Catalogs interface {
	ListSpecies(ctx context.Context) ([]catalog.Species, error)
	ListLocations(ctx context.Context) ([]catalog.Location, error)
	ListBreeds(ctx context.Context, speciesID string) ([]catalog.Breed, error)
}

// Session es la máquina de estados de un workflow de alta/edición.
// Un caller por sesión: no está pensada para uso concurrente.
type Session struct {
	registry Registry
	catalogs Catalogs

	mode    Mode
	state   State
	editID  string
	editing animals.Animal

	species    []catalog.Species
	locations  []catalog.Location
	breeds     []catalog.Breed
	candidates []animals.Animal

	selectedSpeciesID string
	selectedBreedID   string

	loadErr   error
	submitErr error
	saved     animals.Animal
	onSaved   func(animals.Animal)
}

func NewCreate(registry Registry, catalogs Catalogs) *Session {
	return &Session{
		registry: registry,
		catalogs: catalogs,
		mode:     ModeCreate,
		state:    StateIdle,
	}
}

func NewEdit(registry Registry, catalogs Catalogs, animalID string) *Session {
	return &Session{
		registry: registry,
		catalogs: catalogs,
		mode:     ModeEdit,
		state:    StateIdle,
		editID:   animalID,
	}
}

func (s *Session) Mode() Mode   { return s.mode }
func (s *Session) State() State { return s.state }

// LoadErr devuelve el error que dejó la sesión en LoadFailed, si lo hay.
func (s *Session) LoadErr() error { return s.loadErr }

// SubmitErr devuelve el error del último Submit fallido. Se limpia al
// reintentar.
func (s *Session) SubmitErr() error { return s.submitErr }

// OnSaved registra el callback de cierre: se dispara una sola vez, tras un
// Submit exitoso, con el animal guardado. Es el contrato de refresh hacia
// las vistas que dependen de la sesión.
func (s *Session) OnSaved(fn func(animals.Animal)) { s.onSaved = fn }

// Open carga en paralelo todo lo que el formulario necesita: especies,
// ubicaciones y el padrón completo de candidatos a padre/madre (y el animal
// a editar, en modo edición). Cualquier falla deja la sesión en LoadFailed;
// volver a llamar Open reintenta desde cero.
func (s *Session) Open(ctx context.Context) error {
	if s.state != StateIdle && s.state != StateLoadFailed {
		return errors.New("session already open")
	}
	s.state = StateLoading
	s.loadErr = nil

	var (
		species    []catalog.Species
		locations  []catalog.Location
		candidates []animals.Animal
		editing    animals.Animal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		species, err = s.catalogs.ListSpecies(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		locations, err = s.catalogs.ListLocations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		candidates, err = s.registry.List(gctx, animals.Filter{})
		return err
	})
	if s.mode == ModeEdit {
		g.Go(func() error {
			var err error
			editing, err = s.registry.GetByID(gctx, s.editID)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		s.state = StateLoadFailed
		s.loadErr = err
		return err
	}

	s.species = species
	s.locations = locations
	s.candidates = candidates
	s.editing = editing
	s.breeds = nil
	s.selectedSpeciesID = ""
	s.selectedBreedID = ""

	if s.mode == ModeEdit {
		s.selectedSpeciesID = editing.SpeciesID
		s.selectedBreedID = editing.BreedID
		s.loadBreeds(ctx, editing.SpeciesID)
	}

	s.state = StateReady
	return nil
}

func (s *Session) Species() []catalog.Species    { return s.species }
func (s *Session) Locations() []catalog.Location { return s.locations }
func (s *Session) Breeds() []catalog.Breed       { return s.breeds }

// Editing devuelve el animal bajo edición (zero value en modo alta).
func (s *Session) Editing() animals.Animal { return s.editing }

// Saved devuelve el animal persistido tras un Submit exitoso.
func (s *Session) Saved() animals.Animal { return s.saved }

// SelectSpecies fija la especie y dispara el fetch en cascada de sus razas.
// Cualquier raza elegida antes queda descartada: nunca se somete una raza de
// una especie anterior. Si el fetch de razas falla, las opciones quedan
// vacías y la sesión sigue Ready.
func (s *Session) SelectSpecies(ctx context.Context, speciesID string) error {
	if s.state != StateReady {
		return errors.New("session is not ready")
	}
	s.selectedSpeciesID = speciesID
	s.selectedBreedID = ""
	s.loadBreeds(ctx, speciesID)
	return nil
}

// SelectBreed fija la raza; debe ser una de las opciones cargadas para la
// especie seleccionada. Vacío deselecciona.
func (s *Session) SelectBreed(breedID string) error {
	if s.state != StateReady {
		return errors.New("session is not ready")
	}
	if breedID == "" {
		s.selectedBreedID = ""
		return nil
	}
	for _, b := range s.breeds {
		if b.ID == breedID {
			s.selectedBreedID = breedID
			return nil
		}
	}
	return errors.New("breed is not an option for the selected species")
}

func (s *Session) SelectedSpeciesID() string { return s.selectedSpeciesID }
func (s *Session) SelectedBreedID() string   { return s.selectedBreedID }

// FatherCandidates filtra el padrón por machos, excluyendo al animal bajo
// edición de su propia lista. Es defensa en capas: el registro vuelve a
// validar lo mismo al guardar.
func (s *Session) FatherCandidates() []animals.Animal {
	return s.parentCandidates(animals.SexMale)
}

// MotherCandidates es el análogo para hembras.
func (s *Session) MotherCandidates() []animals.Animal {
	return s.parentCandidates(animals.SexFemale)
}

func (s *Session) parentCandidates(sex animals.Sex) []animals.Animal {
	out := make([]animals.Animal, 0)
	for _, a := range s.candidates {
		if a.Sex != sex {
			continue
		}
		if s.mode == ModeEdit && a.ID == s.editID {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Submit confirma el workflow. La especie y raza sometidas son SIEMPRE las
// de la selección en cascada, no las del input: una selección vieja no puede
// colarse. ValidationError y ConflictError devuelven la sesión a Ready con
// el error disponible vía SubmitErr; el éxito pasa a Done y dispara el
// callback de refresh.
func (s *Session) Submit(ctx context.Context, in animals.Input) (animals.Animal, error) {
	if s.state != StateReady {
		return animals.Animal{}, errors.New("session is not ready")
	}
	s.state = StateSubmitting
	s.submitErr = nil

	in.SpeciesID = s.selectedSpeciesID
	in.BreedID = s.selectedBreedID

	var (
		saved animals.Animal
		err   error
	)
	if s.mode == ModeEdit {
		saved, err = s.registry.Update(ctx, s.editID, in)
	} else {
		saved, err = s.registry.Register(ctx, in)
	}
	if err != nil {
		// ValidationError, ConflictError o falla de infraestructura: la
		// sesión vuelve a Ready con el error disponible inline. Nada acá es
		// fatal y lo ya cargado sigue sirviendo.
		s.state = StateReady
		s.submitErr = err
		return animals.Animal{}, err
	}

	s.saved = saved
	s.state = StateDone
	if s.onSaved != nil {
		s.onSaved(saved)
	}
	return saved, nil
}

func (s *Session) loadBreeds(ctx context.Context, speciesID string) {
	breeds, err := s.catalogs.ListBreeds(ctx, speciesID)
	if err != nil {
		// Falla de cascada: opciones vacías, el resto del formulario sigue.
		s.breeds = []catalog.Breed{}
		return
	}
	s.breeds = breeds
}
