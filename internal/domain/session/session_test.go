package session

import (
	"context"
	"errors"
	"testing"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/catalog"
	"livestock-registry/internal/domain/errs"
)

// -------------------------
// Test doubles
// -------------------------

type testRegistry struct {
	byID map[string]animals.Animal

	registerErr error
	updateErr   error
}

func newSessionTestRegistry() *testRegistry {
	return &testRegistry{byID: map[string]animals.Animal{}}
}

func (r *testRegistry) Register(ctx context.Context, in animals.Input) (animals.Animal, error) {
	if r.registerErr != nil {
		return animals.Animal{}, r.registerErr
	}
	a := animals.Animal{
		ID:        "gen-" + in.EarTag,
		EarTag:    in.EarTag,
		SpeciesID: in.SpeciesID,
		BreedID:   in.BreedID,
		Sex:       in.Sex,
		Active:    true,
	}
	r.byID[a.ID] = a
	return a, nil
}

func (r *testRegistry) Update(ctx context.Context, id string, in animals.Input) (animals.Animal, error) {
	if r.updateErr != nil {
		return animals.Animal{}, r.updateErr
	}
	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, errs.ErrNotFound
	}
	a.SpeciesID = in.SpeciesID
	a.BreedID = in.BreedID
	a.Sex = in.Sex
	r.byID[id] = a
	return a, nil
}

func (r *testRegistry) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, errs.ErrNotFound
	}
	return a, nil
}

func (r *testRegistry) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if f.Sex != "" && a.Sex != f.Sex {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type testCatalogs struct {
	speciesErr error
	breedsErr  error
	breeds     map[string][]catalog.Breed
}

func newSessionTestCatalogs() *testCatalogs {
	return &testCatalogs{
		breeds: map[string][]catalog.Breed{
			"sp-bovino": {
				{ID: "br-holstein", SpeciesID: "sp-bovino", Name: "Holstein"},
			},
		},
	}
}

func (c *testCatalogs) ListSpecies(ctx context.Context) ([]catalog.Species, error) {
	if c.speciesErr != nil {
		return nil, c.speciesErr
	}
	return []catalog.Species{
		{ID: "sp-bovino", Name: "Bovino", MilkProducer: true},
		{ID: "sp-porcino", Name: "Porcino"},
	}, nil
}

func (c *testCatalogs) ListLocations(ctx context.Context) ([]catalog.Location, error) {
	return []catalog.Location{{ID: "loc-1", Name: "Corral 1"}}, nil
}

func (c *testCatalogs) ListBreeds(ctx context.Context, speciesID string) ([]catalog.Breed, error) {
	if c.breedsErr != nil {
		return nil, c.breedsErr
	}
	return c.breeds[speciesID], nil
}

// -------------------------
// Tests
// -------------------------

func TestSession_Open_LoadsEverythingAndBecomesReady(t *testing.T) {
	reg := newSessionTestRegistry()
	reg.byID["toro-1"] = animals.Animal{ID: "toro-1", EarTag: "T-001", Sex: animals.SexMale, Active: true}
	reg.byID["vaca-1"] = animals.Animal{ID: "vaca-1", EarTag: "V-001", Sex: animals.SexFemale, Active: true}

	s := NewCreate(reg, newSessionTestCatalogs())
	if s.State() != StateIdle {
		t.Fatalf("expected idle before open, got %s", s.State())
	}

	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s.State() != StateReady {
		t.Fatalf("expected ready, got %s", s.State())
	}
	if len(s.Species()) != 2 || len(s.Locations()) != 1 {
		t.Fatalf("expected catalogs loaded, got %d species %d locations", len(s.Species()), len(s.Locations()))
	}
	if len(s.FatherCandidates()) != 1 || s.FatherCandidates()[0].ID != "toro-1" {
		t.Fatalf("expected father candidates filtered by sex, got %+v", s.FatherCandidates())
	}
	if len(s.MotherCandidates()) != 1 || s.MotherCandidates()[0].ID != "vaca-1" {
		t.Fatalf("expected mother candidates filtered by sex, got %+v", s.MotherCandidates())
	}
}

func TestSession_Open_FailureIsRetryable(t *testing.T) {
	reg := newSessionTestRegistry()
	cats := newSessionTestCatalogs()
	cats.speciesErr = errors.New("boom")

	s := NewCreate(reg, cats)
	if err := s.Open(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if s.State() != StateLoadFailed {
		t.Fatalf("expected load_failed, got %s", s.State())
	}
	if s.LoadErr() == nil {
		t.Fatalf("expected surfaced load error")
	}

	// Reintento tras arreglar la causa
	cats.speciesErr = nil
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("retry Open returned error: %v", err)
	}
	if s.State() != StateReady {
		t.Fatalf("expected ready after retry, got %s", s.State())
	}
}

func TestSession_SelectSpecies_CascadesAndClearsBreed(t *testing.T) {
	s := NewCreate(newSessionTestRegistry(), newSessionTestCatalogs())
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("Open error: %v", err)
	}

	if err := s.SelectSpecies(context.Background(), "sp-bovino"); err != nil {
		t.Fatalf("SelectSpecies error: %v", err)
	}
	if len(s.Breeds()) != 1 {
		t.Fatalf("expected scoped breeds, got %d", len(s.Breeds()))
	}
	if err := s.SelectBreed("br-holstein"); err != nil {
		t.Fatalf("SelectBreed error: %v", err)
	}

	// Cambiar de especie descarta la raza anterior
	if err := s.SelectSpecies(context.Background(), "sp-porcino"); err != nil {
		t.Fatalf("SelectSpecies #2 error: %v", err)
	}
	if s.SelectedBreedID() != "" {
		t.Fatalf("expected breed cleared on species change, got %s", s.SelectedBreedID())
	}
	if len(s.Breeds()) != 0 {
		t.Fatalf("expected no breeds for sp-porcino, got %d", len(s.Breeds()))
	}
}

func TestSession_SelectBreed_RejectsForeignBreed(t *testing.T) {
	s := NewCreate(newSessionTestRegistry(), newSessionTestCatalogs())
	_ = s.Open(context.Background())
	_ = s.SelectSpecies(context.Background(), "sp-porcino")

	if err := s.SelectBreed("br-holstein"); err == nil {
		t.Fatalf("expected error selecting breed outside species options")
	}
}

func TestSession_BreedFetchFailureDegradesToEmpty(t *testing.T) {
	cats := newSessionTestCatalogs()
	s := NewCreate(newSessionTestRegistry(), cats)
	_ = s.Open(context.Background())

	cats.breedsErr = errors.New("boom")
	if err := s.SelectSpecies(context.Background(), "sp-bovino"); err != nil {
		t.Fatalf("SelectSpecies should not fail on breed fetch error: %v", err)
	}
	if s.State() != StateReady {
		t.Fatalf("expected still ready, got %s", s.State())
	}
	if len(s.Breeds()) != 0 {
		t.Fatalf("expected empty breed options, got %d", len(s.Breeds()))
	}
}

func TestSession_Submit_UsesSelectedSpeciesAndBreed(t *testing.T) {
	reg := newSessionTestRegistry()
	s := NewCreate(reg, newSessionTestCatalogs())
	_ = s.Open(context.Background())
	_ = s.SelectSpecies(context.Background(), "sp-bovino")
	_ = s.SelectBreed("br-holstein")

	in := animals.Input{
		EarTag:    "A-001",
		Sex:       animals.SexFemale,
		SpeciesID: "sp-viejo", // debe ser pisado por la selección
		BreedID:   "br-viejo",
	}
	saved, err := s.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if saved.SpeciesID != "sp-bovino" || saved.BreedID != "br-holstein" {
		t.Fatalf("expected selection to win over input, got %+v", saved)
	}
	if s.State() != StateDone {
		t.Fatalf("expected done, got %s", s.State())
	}
}

func TestSession_Submit_ConflictReturnsToReadyWithInlineError(t *testing.T) {
	reg := newSessionTestRegistry()
	reg.registerErr = &errs.ConflictError{Field: "ear_tag", Message: "duplicado"}

	s := NewCreate(reg, newSessionTestCatalogs())
	_ = s.Open(context.Background())
	_ = s.SelectSpecies(context.Background(), "sp-bovino")

	_, err := s.Submit(context.Background(), animals.Input{EarTag: "A-001"})
	var cErr *errs.ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if s.State() != StateReady {
		t.Fatalf("expected back to ready, got %s", s.State())
	}
	if s.SubmitErr() == nil {
		t.Fatalf("expected inline submit error")
	}

	// El reintento limpia el error anterior
	reg.registerErr = nil
	if _, err := s.Submit(context.Background(), animals.Input{EarTag: "A-001"}); err != nil {
		t.Fatalf("retry Submit error: %v", err)
	}
	if s.SubmitErr() != nil {
		t.Fatalf("expected submit error cleared on retry")
	}
}

func TestSession_Submit_FiresCompletionCallback(t *testing.T) {
	reg := newSessionTestRegistry()
	s := NewCreate(reg, newSessionTestCatalogs())
	_ = s.Open(context.Background())
	_ = s.SelectSpecies(context.Background(), "sp-bovino")

	var got animals.Animal
	s.OnSaved(func(a animals.Animal) { got = a })

	saved, err := s.Submit(context.Background(), animals.Input{EarTag: "A-001", Sex: animals.SexFemale})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if got.ID != saved.ID {
		t.Fatalf("expected callback with saved animal, got %+v", got)
	}
}

func TestSession_EditMode_ExcludesSelfFromCandidatesAndPreselects(t *testing.T) {
	reg := newSessionTestRegistry()
	reg.byID["toro-1"] = animals.Animal{ID: "toro-1", EarTag: "T-001", Sex: animals.SexMale, SpeciesID: "sp-bovino", BreedID: "br-holstein", Active: true}
	reg.byID["toro-2"] = animals.Animal{ID: "toro-2", EarTag: "T-002", Sex: animals.SexMale, Active: true}

	s := NewEdit(reg, newSessionTestCatalogs(), "toro-1")
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("Open error: %v", err)
	}

	for _, c := range s.FatherCandidates() {
		if c.ID == "toro-1" {
			t.Fatalf("expected edited animal excluded from its own candidates")
		}
	}
	if s.SelectedSpeciesID() != "sp-bovino" || s.SelectedBreedID() != "br-holstein" {
		t.Fatalf("expected species/breed preselected from edited animal")
	}
	if len(s.Breeds()) != 1 {
		t.Fatalf("expected breeds preloaded for edited species, got %d", len(s.Breeds()))
	}
}
