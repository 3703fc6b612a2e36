package animals

import (
	"context"
	"errors"
	"testing"
	"time"

	"livestock-registry/internal/domain/catalog"
	"livestock-registry/internal/domain/errs"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Animal
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Animal{}}
}

func (r *testRepo) Create(ctx context.Context, a Animal) error {
	if a.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return errs.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, errs.ErrNotFound
	}
	return a, nil
}

func (r *testRepo) GetByEarTag(ctx context.Context, earTag string) (Animal, error) {
	for _, a := range r.byID {
		if a.EarTag == earTag {
			return a, nil
		}
	}
	return Animal{}, errs.ErrNotFound
}

func (r *testRepo) List(ctx context.Context, f Filter) ([]Animal, error) {
	out := make([]Animal, 0)
	for _, a := range r.byID {
		if !f.IncludeInactive && !a.Active {
			continue
		}
		if f.Sex != "" && a.Sex != f.Sex {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// -------------------------
// Test catalogs
// -------------------------

type testCatalogs struct {
	species   map[string]catalog.Species
	locations map[string]catalog.Location
	breeds    map[string][]catalog.Breed // speciesID -> razas
}

func newTestCatalogs() *testCatalogs {
	return &testCatalogs{
		species: map[string]catalog.Species{
			"sp-bovino":  {ID: "sp-bovino", Name: "Bovino", MilkProducer: true},
			"sp-porcino": {ID: "sp-porcino", Name: "Porcino"},
		},
		locations: map[string]catalog.Location{
			"loc-corral-1": {ID: "loc-corral-1", Name: "Corral 1"},
		},
		breeds: map[string][]catalog.Breed{
			"sp-bovino": {
				{ID: "br-holstein", SpeciesID: "sp-bovino", Name: "Holstein"},
			},
		},
	}
}

func (c *testCatalogs) GetSpecies(ctx context.Context, id string) (catalog.Species, error) {
	s, ok := c.species[id]
	if !ok {
		return catalog.Species{}, errs.ErrNotFound
	}
	return s, nil
}

func (c *testCatalogs) GetLocation(ctx context.Context, id string) (catalog.Location, error) {
	l, ok := c.locations[id]
	if !ok {
		return catalog.Location{}, errs.ErrNotFound
	}
	return l, nil
}

func (c *testCatalogs) ListBreeds(ctx context.Context, speciesID string) ([]catalog.Breed, error) {
	return c.breeds[speciesID], nil
}

// -------------------------
// Helpers
// -------------------------

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, newTestCatalogs(), nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func validInput(earTag string) Input {
	bd := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return Input{
		EarTag:     earTag,
		SpeciesID:  "sp-bovino",
		Sex:        SexFemale,
		BirthDate:  &bd,
		LocationID: "loc-corral-1",
	}
}

func violatedFields(t *testing.T, err error) map[string]bool {
	t.Helper()
	var vErr *errs.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	out := map[string]bool{}
	for _, v := range vErr.Violations {
		out[v.Field] = true
	}
	return out
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_OK(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Register(context.Background(), validInput("A-001"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if a.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if a.EarTag != "A-001" {
		t.Fatalf("expected ear tag preserved, got %s", a.EarTag)
	}
	if !a.Active {
		t.Fatalf("expected new animal to be active")
	}
}

func TestService_Register_AccumulatesAllViolations(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), Input{})
	fields := violatedFields(t, err)

	for _, f := range []string{"ear_tag", "species_id", "sex", "birth_date", "location_id"} {
		if !fields[f] {
			t.Fatalf("expected violation on %s, got %v", f, fields)
		}
	}
}

func TestService_Register_UnknownSpeciesAndLocation(t *testing.T) {
	svc, _ := newTestService()

	in := validInput("A-001")
	in.SpeciesID = "sp-nope"
	in.LocationID = "loc-nope"

	_, err := svc.Register(context.Background(), in)
	fields := violatedFields(t, err)
	if !fields["species_id"] || !fields["location_id"] {
		t.Fatalf("expected species_id and location_id violations, got %v", fields)
	}
}

func TestService_Register_BreedMustBelongToSpecies(t *testing.T) {
	svc, _ := newTestService()

	in := validInput("A-001")
	in.SpeciesID = "sp-porcino"
	in.BreedID = "br-holstein" // raza bovina

	_, err := svc.Register(context.Background(), in)
	fields := violatedFields(t, err)
	if !fields["breed_id"] {
		t.Fatalf("expected breed_id violation, got %v", fields)
	}
}

func TestService_Register_DuplicateEarTag_Conflict(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.Register(context.Background(), validInput("A-003")); err != nil {
		t.Fatalf("first Register error: %v", err)
	}

	_, err := svc.Register(context.Background(), validInput("A-003"))
	var cErr *errs.ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if cErr.Field != "ear_tag" {
		t.Fatalf("expected conflict on ear_tag, got %s", cErr.Field)
	}
}

func TestService_Register_DuplicateEarTag_IncludesInactive(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Register(context.Background(), validInput("A-010"))
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := svc.Deactivate(context.Background(), a.ID); err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}

	// El arete no se recicla aunque el animal esté de baja
	_, err = svc.Register(context.Background(), validInput("A-010"))
	var cErr *errs.ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected ConflictError against inactive animal, got %v", err)
	}
}

func TestService_Update_EarTagImmutable(t *testing.T) {
	svc, _ := newTestService()

	a, err := svc.Register(context.Background(), validInput("A-001"))
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	in := validInput("A-999")
	_, err = svc.Update(context.Background(), a.ID, in)
	fields := violatedFields(t, err)
	if !fields["ear_tag"] {
		t.Fatalf("expected ear_tag violation, got %v", fields)
	}

	// Mandar el mismo arete (o vacío) sí es válido
	in = validInput("A-001")
	in.Alias = "Lola"
	updated, err := svc.Update(context.Background(), a.ID, in)
	if err != nil {
		t.Fatalf("Update with same ear tag error: %v", err)
	}
	if updated.EarTag != "A-001" || updated.Alias != "Lola" {
		t.Fatalf("unexpected updated animal: %+v", updated)
	}
}

func TestService_Update_SelfParentage(t *testing.T) {
	svc, _ := newTestService()

	in := validInput("A-002")
	in.Sex = SexMale
	a, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	in.FatherID = a.ID
	_, err = svc.Update(context.Background(), a.ID, in)
	fields := violatedFields(t, err)
	if !fields["father_id"] {
		t.Fatalf("expected father_id violation for self-parentage, got %v", fields)
	}
}

func TestService_Register_ParentSexChecked(t *testing.T) {
	svc, _ := newTestService()

	mother, err := svc.Register(context.Background(), validInput("M-001"))
	if err != nil {
		t.Fatalf("Register mother error: %v", err)
	}

	// Usar una hembra como padre es violación
	in := validInput("A-005")
	in.FatherID = mother.ID
	_, err = svc.Register(context.Background(), in)
	fields := violatedFields(t, err)
	if !fields["father_id"] {
		t.Fatalf("expected father_id sex violation, got %v", fields)
	}
}

func TestService_Update_AncestryCycleRejected(t *testing.T) {
	svc, _ := newTestService()

	grandpa := mustRegister(t, svc, withSex(validInput("G-001"), SexMale))
	father := mustRegister(t, svc, withFather(withSex(validInput("F-001"), SexMale), grandpa.ID))
	child := mustRegister(t, svc, withFather(withSex(validInput("C-001"), SexMale), father.ID))

	// Cerrar el ciclo: el nieto como padre del abuelo
	in := withSex(validInput("G-001"), SexMale)
	in.FatherID = child.ID
	_, err := svc.Update(context.Background(), grandpa.ID, in)
	fields := violatedFields(t, err)
	if !fields["father_id"] {
		t.Fatalf("expected cycle violation on father_id, got %v", fields)
	}
}

func TestService_Deactivate_Idempotent(t *testing.T) {
	svc, repo := newTestService()

	a, err := svc.Register(context.Background(), validInput("A-001"))
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if err := svc.Deactivate(context.Background(), a.ID); err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}
	if err := svc.Deactivate(context.Background(), a.ID); err != nil {
		t.Fatalf("Deactivate #2 should be no-op success, got %v", err)
	}

	got := repo.byID[a.ID]
	if got.Active {
		t.Fatalf("expected inactive animal")
	}
}

func TestService_GetDetails_ResolvesParentsAndAge(t *testing.T) {
	svc, _ := newTestService()

	father := mustRegister(t, svc, withSex(validInput("P-001"), SexMale))

	in := validInput("A-001")
	in.FatherID = father.ID
	in.BreedID = "br-holstein"
	a := mustRegister(t, svc, in)

	d, err := svc.GetDetails(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetDetails error: %v", err)
	}
	if !d.Father.Known || d.Father.EarTag != "P-001" {
		t.Fatalf("expected resolved father, got %+v", d.Father)
	}
	if d.Mother.Known {
		t.Fatalf("expected unknown mother")
	}
	if d.SpeciesName != "Bovino" || d.BreedName != "Holstein" || d.LocationName != "Corral 1" {
		t.Fatalf("expected catalog names resolved, got %+v", d)
	}
	if !d.AgeKnown || d.AgeYears != 4 {
		t.Fatalf("expected age 4, got %d (known=%v)", d.AgeYears, d.AgeKnown)
	}
}

func TestService_GetDetails_DanglingParentDegradesToUnknown(t *testing.T) {
	svc, repo := newTestService()

	a := mustRegister(t, svc, validInput("A-001"))

	// Referencia colgante inyectada directo al repo (data sucia)
	stored := repo.byID[a.ID]
	stored.FatherID = "gone"
	repo.byID[a.ID] = stored

	d, err := svc.GetDetails(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetDetails error: %v", err)
	}
	if d.Father.Known {
		t.Fatalf("expected dangling father to degrade to unknown")
	}
	if d.Father.ID != "gone" {
		t.Fatalf("expected dangling id preserved, got %s", d.Father.ID)
	}
}

func mustRegister(t *testing.T, svc *Service, in Input) Animal {
	t.Helper()
	a, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register %s error: %v", in.EarTag, err)
	}
	return a
}

func withSex(in Input, sex Sex) Input {
	in.Sex = sex
	return in
}

func withFather(in Input, fatherID string) Input {
	in.FatherID = fatherID
	return in
}
