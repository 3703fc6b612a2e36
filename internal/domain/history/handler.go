package history

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/errs"
	"livestock-registry/internal/middleware"
	"livestock-registry/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, animalsSvc *animals.Service) {
	r.Route("/animals/{animalID}/events", func(er chi.Router) {
		er.Post("/", recordEventHandler(svc, animalsSvc))
		er.Get("/", listEventsHandler(svc, animalsSvc))
	})

	r.Route("/animals/{animalID}/production", func(pr chi.Router) {
		pr.Post("/", recordProductionHandler(svc, animalsSvc))
		pr.Get("/", listProductionHandler(svc, animalsSvc))
	})
}

type recordEventRequest struct {
	EventTypeID string  `json:"event_type_id"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Description string  `json:"description"`
	Cost        float64 `json:"cost"` // omitido => 0
}

type eventResponse struct {
	ID          string    `json:"id"`
	AnimalID    string    `json:"animal_id"`
	EventTypeID string    `json:"event_type_id"`
	TypeName    string    `json:"type_name,omitempty"`
	Category    string    `json:"category,omitempty"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Cost        float64   `json:"cost"`
	PerformedBy string    `json:"performed_by,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

type recordProductionRequest struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Shift  string  `json:"shift" enums:"Mañana,Tarde"`
	Liters float64 `json:"liters"`
}

type productionResponse struct {
	ID         string    `json:"id"`
	AnimalID   string    `json:"animal_id"`
	Date       time.Time `json:"date"`
	Shift      Shift     `json:"shift"`
	Liters     float64   `json:"liters"`
	RecordedAt time.Time `json:"recorded_at"`
}

type productionListResponse struct {
	TotalLiters float64              `json:"total_liters"`
	Items       []productionResponse `json:"items"`
}

// recordEventHandler godoc
// @Summary Registrar evento clínico/reproductivo
// @Description Agrega una entrada inmutable al historial del animal. Tipo y fecha son obligatorios; cost omitido se guarda como 0. performed_by se toma de las claims autenticadas si están presentes.
// @Tags history
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body recordEventRequest true "Datos del evento; date en formato YYYY-MM-DD"
// @Success 201 {object} eventResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/events [post]
func recordEventHandler(svc *Service, animalsSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animalID := chi.URLParam(r, "animalID")
		if _, err := animalsSvc.GetByID(r.Context(), animalID); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				http.Error(w, "animal not found", http.StatusNotFound)
				return
			}
			writeDomainError(w, err)
			return
		}

		var req recordEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		performedBy := ""
		if claims, ok := middleware.GetClaims(r.Context()); ok {
			performedBy = claims.UserID
		}

		e, err := svc.RecordEvent(r.Context(), RecordEventInput{
			AnimalID:    animalID,
			EventTypeID: req.EventTypeID,
			Date:        date,
			Description: req.Description,
			Cost:        req.Cost,
			PerformedBy: performedBy,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		metrics.EventsRecorded.Inc()
		writeJSON(w, http.StatusCreated, toEventResponse(EventEntry{Event: e}))
	}
}

func listEventsHandler(svc *Service, animalsSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animalID := chi.URLParam(r, "animalID")
		if _, err := animalsSvc.GetByID(r.Context(), animalID); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				http.Error(w, "animal not found", http.StatusNotFound)
				return
			}
			writeDomainError(w, err)
			return
		}

		items, err := svc.ListEvents(r.Context(), animalID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// recordProductionHandler godoc
// @Summary Registrar ordeño
// @Description Agrega una lectura de producción. Todos los campos son obligatorios y liters debe ser > 0. Devuelve 422 si el animal no es hembra de especie lechera; en ese caso el ledger queda intacto.
// @Tags history
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body recordProductionRequest true "Lectura; date en formato YYYY-MM-DD"
// @Success 201 {object} productionResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {string} string "animal not found"
// @Failure 422 {object} errorResponse
// @Router /animals/{animalID}/production [post]
func recordProductionHandler(svc *Service, animalsSvc *animals.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animalID := chi.URLParam(r, "animalID")
		if _, err := animalsSvc.GetByID(r.Context(), animalID); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				http.Error(w, "animal not found", http.StatusNotFound)
				return
			}
			writeDomainError(w, err)
			return
		}

		var req recordProductionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		p, err := svc.RecordProduction(r.Context(), RecordProductionInput{
			AnimalID: animalID,
			Date:     date,
			Shift:    Shift(strings.TrimSpace(req.Shift)),
			Liters:   req.Liters,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		metrics.ProductionRecorded.Inc()
		writeJSON(w, http.StatusCreated, toProductionResponse(p))
	}
}

func listProductionHandler(svc *Service, animalsSvc *animals.Service) http.HandlerFunc {
	// La respuesta incluye el total histórico: calcularlo es responsabilidad
	// del ledger, no de cada consumidor.
	return func(w http.ResponseWriter, r *http.Request) {
		animalID := chi.URLParam(r, "animalID")
		if _, err := animalsSvc.GetByID(r.Context(), animalID); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				http.Error(w, "animal not found", http.StatusNotFound)
				return
			}
			writeDomainError(w, err)
			return
		}

		items, err := svc.ListProduction(r.Context(), animalID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		total, err := svc.TotalLiters(r.Context(), animalID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := productionListResponse{TotalLiters: total, Items: make([]productionResponse, 0, len(items))}
		for _, p := range items {
			out.Items = append(out.Items, toProductionResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil // la validación de obligatoriedad la hace el service
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toEventResponse(e EventEntry) eventResponse {
	return eventResponse{
		ID:          e.ID,
		AnimalID:    e.AnimalID,
		EventTypeID: e.EventTypeID,
		TypeName:    e.TypeName,
		Category:    e.Category,
		Date:        e.Date,
		Description: e.Description,
		Cost:        e.Cost,
		PerformedBy: e.PerformedBy,
		RecordedAt:  e.RecordedAt,
	}
}

func toProductionResponse(p ProductionReading) productionResponse {
	return productionResponse{
		ID:         p.ID,
		AnimalID:   p.AnimalID,
		Date:       p.Date,
		Shift:      p.Shift,
		Liters:     p.Liters,
		RecordedAt: p.RecordedAt,
	}
}

type errorResponse struct {
	Error  string                `json:"error"`
	Fields []errs.FieldViolation `json:"fields,omitempty"`
}

// writeDomainError está duplicado intencionalmente con el handler de
// animals; ver nota sobre writeJSON.
func writeDomainError(w http.ResponseWriter, err error) {
	var vErr *errs.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Error(), Fields: vErr.Violations})
		return
	}
	var cErr *errs.ConflictError
	if errors.As(err, &cErr) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: cErr.Message})
		return
	}
	var eErr *errs.EligibilityError
	if errors.As(err, &eErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: eErr.Reason})
		return
	}
	var tErr *errs.TransportError
	if errors.As(err, &tErr) {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: tErr.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
