package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/species", listSpeciesHandler(svc))
	r.Get("/species/{speciesID}/breeds", listBreedsHandler(svc))
	r.Get("/locations", listLocationsHandler(svc))
	r.Get("/event-types", listEventTypesHandler(svc))
}

type speciesResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MilkProducer bool   `json:"milk_producer"`
}

type breedResponse struct {
	ID        string `json:"id"`
	SpeciesID string `json:"species_id"`
	Name      string `json:"name"`
}

type locationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type eventTypeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func listSpeciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListSpecies(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]speciesResponse, 0, len(items))
		for _, sp := range items {
			out = append(out, speciesResponse{ID: sp.ID, Name: sp.Name, MilkProducer: sp.MilkProducer})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listBreedsHandler(svc *Service) http.HandlerFunc {
	// speciesID desconocido => lista vacía, no 404: el form depende de eso.
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListBreeds(r.Context(), chi.URLParam(r, "speciesID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]breedResponse, 0, len(items))
		for _, b := range items {
			out = append(out, breedResponse{ID: b.ID, SpeciesID: b.SpeciesID, Name: b.Name})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listLocationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListLocations(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]locationResponse, 0, len(items))
		for _, l := range items {
			out = append(out, locationResponse{ID: l.ID, Name: l.Name})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listEventTypesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListEventTypes(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]eventTypeResponse, 0, len(items))
		for _, t := range items {
			out = append(out, eventTypeResponse{ID: t.ID, Name: t.Name, Category: t.Category})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
