package animals

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"livestock-registry/internal/domain/errs"
	"livestock-registry/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", registerAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/{animalID}", getAnimalDetailsHandler(svc))
		ar.Put("/{animalID}", updateAnimalHandler(svc))
		ar.Delete("/{animalID}", deactivateAnimalHandler(svc))
	})
}

// animalRequest es el cuerpo de alta/edición. En multipart los campos de
// texto llevan los mismos nombres y la foto viaja en el campo "photo".
type animalRequest struct {
	EarTag     string `json:"ear_tag"`
	Alias      string `json:"alias"`
	SpeciesID  string `json:"species_id"`
	BreedID    string `json:"breed_id"`
	Sex        string `json:"sex" enums:"M,H"`
	BirthDate  string `json:"birth_date"` // YYYY-MM-DD
	LocationID string `json:"location_id"`
	Origin     string `json:"origin"`
	FatherID   string `json:"father_id"`
	MotherID   string `json:"mother_id"`
}

type animalResponse struct {
	ID         string     `json:"id"`
	EarTag     string     `json:"ear_tag"`
	Alias      string     `json:"alias"`
	SpeciesID  string     `json:"species_id"`
	BreedID    string     `json:"breed_id,omitempty"`
	Sex        Sex        `json:"sex"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	LocationID string     `json:"location_id"`
	Origin     string     `json:"origin,omitempty"`
	FatherID   string     `json:"father_id,omitempty"`
	MotherID   string     `json:"mother_id,omitempty"`
	PhotoRef   string     `json:"photo_ref,omitempty"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type parentRefResponse struct {
	ID     string `json:"id,omitempty"`
	EarTag string `json:"ear_tag,omitempty"`
	Alias  string `json:"alias,omitempty"`
	Known  bool   `json:"known"`
}

type animalDetailsResponse struct {
	animalResponse

	SpeciesName  string            `json:"species_name"`
	BreedName    string            `json:"breed_name,omitempty"`
	LocationName string            `json:"location_name"`
	Father       parentRefResponse `json:"father"`
	Mother       parentRefResponse `json:"mother"`
	AgeYears     *int              `json:"age_years,omitempty"` // ausente = edad desconocida
}

// registerAnimalHandler godoc
// @Summary Registrar un animal
// @Description Da de alta un animal. Acepta JSON o multipart/form-data (campo `photo` para la foto). Devuelve 400 con todas las violaciones de campo, 409 si el arete ya existe.
// @Tags animals
// @Accept json
// @Accept mpfd
// @Produce json
// @Param payload body animalRequest true "Datos del animal; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} animalResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /animals [post]
func registerAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeAnimalInput(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Register(r.Context(), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		metrics.AnimalsRegistered.Inc()
		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := Filter{
			IncludeInactive: r.URL.Query().Get("include_inactive") == "true",
			Sex:             Sex(strings.TrimSpace(r.URL.Query().Get("sex"))),
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getAnimalDetailsHandler godoc
// @Summary Detalle de un animal
// @Description Devuelve el animal con nombres de catálogo resueltos, padres resumidos (known=false para referencia ausente o colgante) y edad calculada.
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalDetailsResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [get]
func getAnimalDetailsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.GetDetails(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				http.Error(w, "animal not found", http.StatusNotFound)
				return
			}
			writeDomainError(w, err)
			return
		}

		resp := animalDetailsResponse{
			animalResponse: toAnimalResponse(d.Animal),
			SpeciesName:    d.SpeciesName,
			BreedName:      d.BreedName,
			LocationName:   d.LocationName,
			Father:         toParentRefResponse(d.Father),
			Mother:         toParentRefResponse(d.Mother),
		}
		if d.AgeKnown {
			age := d.AgeYears
			resp.AgeYears = &age
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := decodeAnimalInput(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), in)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				http.Error(w, "animal not found", http.StatusNotFound)
				return
			}
			writeDomainError(w, err)
			return
		}

		metrics.AnimalsUpdated.Inc()
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func deactivateAnimalHandler(svc *Service) http.HandlerFunc {
	// Baja lógica; idempotente.
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Deactivate(r.Context(), chi.URLParam(r, "animalID")); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				http.Error(w, "animal not found", http.StatusNotFound)
				return
			}
			writeDomainError(w, err)
			return
		}
		metrics.AnimalsDeactivated.Inc()
		w.WriteHeader(http.StatusNoContent)
	}
}

// decodeAnimalInput soporta JSON y multipart/form-data. En multipart la foto
// viaja en el campo "photo"; los campos de texto llevan los mismos nombres
// que el body JSON.
func decodeAnimalInput(r *http.Request) (Input, error) {
	ct := r.Header.Get("Content-Type")

	var req animalRequest
	var photo *PhotoUpload

	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			return Input{}, errors.New("invalid multipart form")
		}
		req = animalRequest{
			EarTag:     r.FormValue("ear_tag"),
			Alias:      r.FormValue("alias"),
			SpeciesID:  r.FormValue("species_id"),
			BreedID:    r.FormValue("breed_id"),
			Sex:        r.FormValue("sex"),
			BirthDate:  r.FormValue("birth_date"),
			LocationID: r.FormValue("location_id"),
			Origin:     r.FormValue("origin"),
			FatherID:   r.FormValue("father_id"),
			MotherID:   r.FormValue("mother_id"),
		}

		if file, header, err := r.FormFile("photo"); err == nil {
			defer file.Close()
			data, err := io.ReadAll(io.LimitReader(file, 10<<20))
			if err != nil {
				return Input{}, errors.New("cannot read photo")
			}
			photo = &PhotoUpload{
				Data:        data,
				ContentType: header.Header.Get("Content-Type"),
			}
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return Input{}, errors.New("invalid json")
		}
	}

	var bd *time.Time
	if strings.TrimSpace(req.BirthDate) != "" {
		t, err := time.Parse("2006-01-02", strings.TrimSpace(req.BirthDate))
		if err != nil {
			return Input{}, errors.New("birth_date must be YYYY-MM-DD")
		}
		bd = &t
	}

	return Input{
		EarTag:     req.EarTag,
		Alias:      req.Alias,
		SpeciesID:  req.SpeciesID,
		BreedID:    req.BreedID,
		Sex:        Sex(strings.TrimSpace(req.Sex)),
		BirthDate:  bd,
		LocationID: req.LocationID,
		Origin:     req.Origin,
		FatherID:   req.FatherID,
		MotherID:   req.MotherID,
		Photo:      photo,
	}, nil
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:         a.ID,
		EarTag:     a.EarTag,
		Alias:      a.Alias,
		SpeciesID:  a.SpeciesID,
		BreedID:    a.BreedID,
		Sex:        a.Sex,
		BirthDate:  a.BirthDate,
		LocationID: a.LocationID,
		Origin:     a.Origin,
		FatherID:   a.FatherID,
		MotherID:   a.MotherID,
		PhotoRef:   a.PhotoRef,
		Active:     a.Active,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func toParentRefResponse(p ParentRef) parentRefResponse {
	return parentRefResponse{ID: p.ID, EarTag: p.EarTag, Alias: p.Alias, Known: p.Known}
}

// errorResponse es el payload de error de la API: mensaje legible y, para
// errores de validación, la lista completa de campos violados.
type errorResponse struct {
	Error  string                `json:"error"`
	Fields []errs.FieldViolation `json:"fields,omitempty"`
}

// writeDomainError mapea la taxonomía de errores del dominio a HTTP:
// validación 400 (con todos los campos), conflicto 409, elegibilidad 422,
// transporte 502. Cualquier otra cosa es 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var vErr *errs.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Error(), Fields: vErr.Violations})
		return
	}
	var cErr *errs.ConflictError
	if errors.As(err, &cErr) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: cErr.Message, Fields: []errs.FieldViolation{{Field: cErr.Field, Message: cErr.Message}}})
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
