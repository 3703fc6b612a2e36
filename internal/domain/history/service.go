package history

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/catalog"
	"livestock-registry/internal/domain/errs"
	"livestock-registry/internal/ports/eligibility"

	"github.com/google/uuid"
)

// AnimalDirectory es lo que el ledger necesita del registro de animales.
// Lo satisface *animals.Service.
type AnimalDirectory interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
}

// EventTypes resuelve la taxonomía de tipos de evento.
// Lo satisface *catalog.Service.
type EventTypes interface {
	GetEventType(ctx context.Context, id string) (catalog.EventType, error)
}

type Service struct {
	repo        Repository
	animals     AnimalDirectory
	types       EventTypes
	eligibility eligibility.Resolver
	now         func() time.Time
}

func NewService(repo Repository, dir AnimalDirectory, types EventTypes, resolver eligibility.Resolver) *Service {
	return &Service{
		repo:        repo,
		animals:     dir,
		types:       types,
		eligibility: resolver,
		now:         time.Now,
	}
}

type RecordEventInput struct {
	AnimalID    string
	EventTypeID string
	Date        *time.Time
	Description string
	Cost        float64 // omitido => 0
	PerformedBy string
}

// RecordEvent agrega una entrada al historial. Tipo y fecha son
// obligatorios; el costo default es 0 y nunca negativo.
func (s *Service) RecordEvent(ctx context.Context, in RecordEventInput) (Event, error) {
	v := &errs.ValidationError{}

	animalID := strings.TrimSpace(in.AnimalID)
	if animalID == "" {
		v.Add("animal_id", "el animal es obligatorio")
	}

	typeID := strings.TrimSpace(in.EventTypeID)
	if typeID == "" {
		v.Add("event_type_id", "el tipo de evento es obligatorio")
	} else if _, err := s.types.GetEventType(ctx, typeID); err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return Event{}, err
		}
		v.Add("event_type_id", "el tipo de evento no existe")
	}

	if in.Date == nil || in.Date.IsZero() {
		v.Add("date", "la fecha del evento es obligatoria")
	}
	if in.Cost < 0 {
		v.Add("cost", "el costo no puede ser negativo")
	}
	if err := v.OrNil(); err != nil {
		return Event{}, err
	}

	e := Event{
		ID:          uuid.NewString(),
		AnimalID:    animalID,
		EventTypeID: typeID,
		Date:        *in.Date,
		Description: strings.TrimSpace(in.Description),
		Cost:        in.Cost,
		PerformedBy: strings.TrimSpace(in.PerformedBy),
		RecordedAt:  s.now(),
	}

	if err := s.repo.AppendEvent(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

type RecordProductionInput struct {
	AnimalID string
	Date     *time.Time
	Shift    Shift
	Liters   float64
}

// RecordProduction agrega una lectura de ordeño. Falla con
// *errs.EligibilityError (y el ledger queda intacto) si el animal no es
// hembra de especie lechera.
func (s *Service) RecordProduction(ctx context.Context, in RecordProductionInput) (ProductionReading, error) {
	v := &errs.ValidationError{}

	animalID := strings.TrimSpace(in.AnimalID)
	if animalID == "" {
		v.Add("animal_id", "el animal es obligatorio")
	}
	if in.Date == nil || in.Date.IsZero() {
		v.Add("date", "la fecha es obligatoria")
	}
	if !in.Shift.Valid() {
		v.Add("shift", "la jornada debe ser Mañana o Tarde")
	}
	if in.Liters <= 0 {
		v.Add("liters", "la cantidad de litros debe ser mayor a 0")
	}
	if err := v.OrNil(); err != nil {
		return ProductionReading{}, err
	}

	a, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return ProductionReading{}, err
	}
	if a.Sex != animals.SexFemale {
		return ProductionReading{}, &errs.EligibilityError{
			Reason: "solo se registra producción para hembras",
		}
	}
	milker, err := s.eligibility.IsMilkProducer(ctx, a.SpeciesID)
	if err != nil {
		return ProductionReading{}, err
	}
	if !milker {
		return ProductionReading{}, &errs.EligibilityError{
			Reason: "la especie del animal no es lechera",
		}
	}

	p := ProductionReading{
		ID:         uuid.NewString(),
		AnimalID:   animalID,
		Date:       *in.Date,
		Shift:      in.Shift,
		Liters:     in.Liters,
		RecordedAt: s.now(),
	}

	if err := s.repo.AppendProduction(ctx, p); err != nil {
		return ProductionReading{}, err
	}
	return p, nil
}

// ListEvents devuelve el historial ordenado por fecha descendente, cada
// entrada anotada con nombre y categoría de su tipo. El orden lo impone el
// ledger, no el storage, para que todos los consumidores vean lo mismo.
func (s *Service) ListEvents(ctx context.Context, animalID string) ([]EventEntry, error) {
	items, err := s.repo.ListEventsByAnimal(ctx, strings.TrimSpace(animalID))
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].RecordedAt.After(items[j].RecordedAt)
	})

	out := make([]EventEntry, 0, len(items))
	for _, e := range items {
		entry := EventEntry{Event: e}
		if t, err := s.types.GetEventType(ctx, e.EventTypeID); err == nil {
			entry.TypeName = t.Name
			entry.Category = t.Category
		}
		out = append(out, entry)
	}
	return out, nil
}

// ListProduction devuelve las lecturas ordenadas por fecha descendente.
func (s *Service) ListProduction(ctx context.Context, animalID string) ([]ProductionReading, error) {
	items, err := s.repo.ListProductionByAnimal(ctx, strings.TrimSpace(animalID))
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].RecordedAt.After(items[j].RecordedAt)
	})
	return items, nil
}

// TotalLiters suma todas las lecturas del animal, redondeado a 1 decimal.
// Se recalcula sobre la secuencia completa en cada llamada: nunca se sirve
// un agregado cacheado potencialmente viejo.
func (s *Service) TotalLiters(ctx context.Context, animalID string) (float64, error) {
	items, err := s.repo.ListProductionByAnimal(ctx, strings.TrimSpace(animalID))
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, p := range items {
		sum += p.Liters
	}
	return math.Round(sum*10) / 10, nil
}
