package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"livestock-registry/internal/platform/config"
	"livestock-registry/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	h, err := router.NewRouter(router.Options{
		Config: config.Config{
			Storage:     config.StorageMemory,
			PhotoDriver: config.PhotosNone,
		},
		AuthVerifier: nil,
	})
	if err != nil {
		t.Fatalf("NewRouter error: %v", err)
	}

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_RegisterHistoryAndProduction(t *testing.T) {
	ts := newTestServer(t)

	// 1) Catálogos sembrados disponibles
	var species []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		MilkProducer bool   `json:"milk_producer"`
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/species", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing species, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &species)
		if len(species) == 0 {
			t.Fatalf("expected seeded species")
		}
	}

	// 2) Alta de una vaca
	cowID := createAnimal(t, ts.URL, map[string]any{
		"ear_tag":     "A-001",
		"alias":       "Lola",
		"species_id":  "sp-bovino",
		"breed_id":    "br-holstein",
		"sex":         "H",
		"birth_date":  "2020-01-01",
		"location_id": "loc-corral-1",
	})

	// 3) Arete duplicado => 409
	{
		st, body := doReq(t, ts.URL, "POST", "/animals", "vaquero-1", map[string]any{
			"ear_tag":     "A-001",
			"species_id":  "sp-bovino",
			"sex":         "M",
			"birth_date":  "2021-05-01",
			"location_id": "loc-corral-1",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate ear tag, got %d body=%s", st, string(body))
		}
	}

	// 4) El primero sigue recuperable con detalle enriquecido
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+cowID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 details, got %d body=%s", st, string(body))
		}
		var d struct {
			EarTag      string `json:"ear_tag"`
			SpeciesName string `json:"species_name"`
			BreedName   string `json:"breed_name"`
			Father      struct {
				Known bool `json:"known"`
			} `json:"father"`
		}
		_ = json.Unmarshal(body, &d)
		if d.EarTag != "A-001" || d.SpeciesName != "Bovino" || d.BreedName != "Holstein" {
			t.Fatalf("unexpected details: %s", string(body))
		}
		if d.Father.Known {
			t.Fatalf("expected unknown father marker")
		}
	}

	// 5) Alta inválida => 400 con todos los campos violados
	{
		st, body := doReq(t, ts.URL, "POST", "/animals", "", map[string]any{})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 empty registration, got %d", st)
		}
		var resp struct {
			Fields []struct {
				Field string `json:"field"`
			} `json:"fields"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Fields) < 4 {
			t.Fatalf("expected all violations reported, got %s", string(body))
		}
	}

	// 6) Evento sin fecha => 400; con datos => 201 y costo default 0
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/"+cowID+"/events", "vaquero-1", map[string]any{
			"event_type_id": "et-vacunacion",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 event without date, got %d", st)
		}

		st, body := doReq(t, ts.URL, "POST", "/animals/"+cowID+"/events", "vaquero-1", map[string]any{
			"event_type_id": "et-vacunacion",
			"date":          "2024-03-01",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 event, got %d body=%s", st, string(body))
		}
		var e struct {
			Cost        float64 `json:"cost"`
			PerformedBy string  `json:"performed_by"`
		}
		_ = json.Unmarshal(body, &e)
		if e.Cost != 0 {
			t.Fatalf("expected default cost 0, got %v", e.Cost)
		}
		if e.PerformedBy != "vaquero-1" {
			t.Fatalf("expected performed_by from auth claims, got %q", e.PerformedBy)
		}
	}

	// 7) Producción para la vaca => 201; listado con total acumulado
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+cowID+"/production", "", map[string]any{
			"date":   "2024-06-01",
			"shift":  "Mañana",
			"liters": 12.5,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 production, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/animals/"+cowID+"/production", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 production list, got %d", st)
		}
		var list struct {
			TotalLiters float64 `json:"total_liters"`
			Items       []any   `json:"items"`
		}
		_ = json.Unmarshal(body, &list)
		if list.TotalLiters != 12.5 || len(list.Items) != 1 {
			t.Fatalf("unexpected production list: %s", string(body))
		}
	}
}

func TestHTTP_Production_RejectedForMale(t *testing.T) {
	ts := newTestServer(t)

	bullID := createAnimal(t, ts.URL, map[string]any{
		"ear_tag":     "T-001",
		"species_id":  "sp-bovino",
		"sex":         "M",
		"birth_date":  "2019-02-10",
		"location_id": "loc-corral-1",
	})

	st, body := doReq(t, ts.URL, "POST", "/animals/"+bullID+"/production", "", map[string]any{
		"date":   "2024-06-01",
		"shift":  "Tarde",
		"liters": 8,
	})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 production for male, got %d body=%s", st, string(body))
	}

	// El ledger queda intacto
	st, body = doReq(t, ts.URL, "GET", "/animals/"+bullID+"/production", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 production list, got %d", st)
	}
	var list struct {
		Items []any `json:"items"`
	}
	_ = json.Unmarshal(body, &list)
	if len(list.Items) != 0 {
		t.Fatalf("expected untouched ledger, got %s", string(body))
	}
}

func TestHTTP_DeactivateIsLogicalAndIdempotent(t *testing.T) {
	ts := newTestServer(t)

	id := createAnimal(t, ts.URL, map[string]any{
		"ear_tag":     "B-001",
		"species_id":  "sp-caprino",
		"sex":         "H",
		"birth_date":  "2022-08-15",
		"location_id": "loc-establo",
	})

	if st, _ := doReq(t, ts.URL, "DELETE", "/animals/"+id, "", nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 deactivate, got %d", st)
	}
	// idempotente
	if st, _ := doReq(t, ts.URL, "DELETE", "/animals/"+id, "", nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 on repeat deactivate, got %d", st)
	}

	// Fuera del listado default, pero el registro persiste
	{
		st, body := doReq(t, ts.URL, "GET", "/animals", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var items []struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &items)
		for _, it := range items {
			if it.ID == id {
				t.Fatalf("expected deactivated animal hidden from default list")
			}
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals/"+id, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 details for inactive animal, got %d", st)
		}
	}

	// El arete sigue reservado
	st, _ := doReq(t, ts.URL, "POST", "/animals", "", map[string]any{
		"ear_tag":     "B-001",
		"species_id":  "sp-caprino",
		"sex":         "M",
		"birth_date":  "2023-01-01",
		"location_id": "loc-establo",
	})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 reusing ear tag of inactive animal, got %d", st)
	}
}

func TestHTTP_BreedsCascadeAndUnknownAnimal(t *testing.T) {
	ts := newTestServer(t)

	{
		st, body := doReq(t, ts.URL, "GET", "/species/sp-bovino/breeds", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 breeds, got %d", st)
		}
		var breeds []any
		_ = json.Unmarshal(body, &breeds)
		if len(breeds) == 0 {
			t.Fatalf("expected seeded breeds for sp-bovino")
		}
	}
	{
		// Especie desconocida => lista vacía, nunca error
		st, body := doReq(t, ts.URL, "GET", "/species/sp-nope/breeds", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 breeds for unknown species, got %d", st)
		}
		var breeds []any
		_ = json.Unmarshal(body, &breeds)
		if len(breeds) != 0 {
			t.Fatalf("expected empty breeds, got %s", string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals/nope", "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown animal, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/health", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 health, got %d", st)
		}
	}
}

func createAnimal(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals", "", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create animal: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
