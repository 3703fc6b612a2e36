package remote

import (
	"context"
	"net/http"

	"livestock-registry/internal/domain/history"
)

type HistoryRepo struct {
	c *Client
}

func NewHistoryRepo(c *Client) *HistoryRepo {
	return &HistoryRepo{c: c}
}

type eventoDTO struct {
	ID            string  `json:"id"`
	AnimalID      string  `json:"animal_id"`
	TipoEventoID  string  `json:"tipo_evento_id"`
	Fecha         string  `json:"fecha"`
	Descripcion   string  `json:"descripcion,omitempty"`
	CostoAsociado float64 `json:"costo_asociado"`
	RealizadoPor  string  `json:"realizado_por,omitempty"`
	RegistradoEn  string  `json:"registrado_en,omitempty"`
}

type produccionDTO struct {
	ID           string  `json:"id"`
	AnimalID     string  `json:"animal_id"`
	Fecha        string  `json:"fecha"`
	Jornada      string  `json:"jornada"`
	Litros       float64 `json:"litros"`
	RegistradoEn string  `json:"registrado_en,omitempty"`
}

func (r *HistoryRepo) AppendEvent(ctx context.Context, e history.Event) error {
	d := eventoDTO{
		ID:            e.ID,
		AnimalID:      e.AnimalID,
		TipoEventoID:  e.EventTypeID,
		Fecha:         e.Date.Format("2006-01-02"),
		Descripcion:   e.Description,
		CostoAsociado: e.Cost,
		RealizadoPor:  e.PerformedBy,
	}
	err := r.c.http.DoJSON(ctx, http.MethodPost, "/eventos", nil, d, nil)
	return wrapErr("append event", err)
}

func (r *HistoryRepo) ListEventsByAnimal(ctx context.Context, animalID string) ([]history.Event, error) {
	var dtos []eventoDTO
	err := r.c.http.DoJSON(ctx, http.MethodGet, "/eventos/animal/"+animalID, nil, nil, &dtos)
	if err != nil {
		return nil, wrapErr("list events", err)
	}

	out := make([]history.Event, 0, len(dtos))
	for _, d := range dtos {
		e := history.Event{
			ID:          d.ID,
			AnimalID:    d.AnimalID,
			EventTypeID: d.TipoEventoID,
			Description: d.Descripcion,
			Cost:        d.CostoAsociado,
			PerformedBy: d.RealizadoPor,
			RecordedAt:  parseTimestamp(d.RegistradoEn),
		}
		if t := parseDate(d.Fecha); t != nil {
			e.Date = *t
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *HistoryRepo) AppendProduction(ctx context.Context, p history.ProductionReading) error {
	d := produccionDTO{
		ID:       p.ID,
		AnimalID: p.AnimalID,
		Fecha:    p.Date.Format("2006-01-02"),
		Jornada:  string(p.Shift),
		Litros:   p.Liters,
	}
	err := r.c.http.DoJSON(ctx, http.MethodPost, "/produccion", nil, d, nil)
	return wrapErr("append production", err)
}

func (r *HistoryRepo) ListProductionByAnimal(ctx context.Context, animalID string) ([]history.ProductionReading, error) {
	var dtos []produccionDTO
	err := r.c.http.DoJSON(ctx, http.MethodGet, "/produccion/animal/"+animalID, nil, nil, &dtos)
	if err != nil {
		return nil, wrapErr("list production", err)
	}

	out := make([]history.ProductionReading, 0, len(dtos))
	for _, d := range dtos {
		p := history.ProductionReading{
			ID:         d.ID,
			AnimalID:   d.AnimalID,
			Shift:      history.Shift(d.Jornada),
			Liters:     d.Litros,
			RecordedAt: parseTimestamp(d.RegistradoEn),
		}
		if t := parseDate(d.Fecha); t != nil {
			p.Date = *t
		}
		out = append(out, p)
	}
	return out, nil
}
