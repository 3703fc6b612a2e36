package postgres

import (
	"context"
	"database/sql"
	"strings"

	"livestock-registry/internal/domain/history"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) AppendEvent(ctx context.Context, e history.Event) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animal_events (
			id, animal_id, event_type_id,
			date, description, cost,
			performed_by, recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		e.ID,
		e.AnimalID,
		e.EventTypeID,
		e.Date,
		e.Description,
		e.Cost,
		e.PerformedBy,
		e.RecordedAt,
	)
	return err
}

func (r *HistoryRepo) ListEventsByAnimal(ctx context.Context, animalID string) ([]history.Event, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return []history.Event{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, animal_id, event_type_id,
			date, description, cost,
			performed_by, recorded_at
		FROM animal_events
		WHERE animal_id = $1
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.Event, 0)
	for rows.Next() {
		var e history.Event
		if err := rows.Scan(
			&e.ID,
			&e.AnimalID,
			&e.EventTypeID,
			&e.Date,
			&e.Description,
			&e.Cost,
			&e.PerformedBy,
			&e.RecordedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *HistoryRepo) AppendProduction(ctx context.Context, p history.ProductionReading) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO production_readings (
			id, animal_id,
			date, shift, liters,
			recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		p.ID,
		p.AnimalID,
		p.Date,
		string(p.Shift),
		p.Liters,
		p.RecordedAt,
	)
	return err
}

func (r *HistoryRepo) ListProductionByAnimal(ctx context.Context, animalID string) ([]history.ProductionReading, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return []history.ProductionReading{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, animal_id,
			date, shift, liters,
			recorded_at
		FROM production_readings
		WHERE animal_id = $1
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.ProductionReading, 0)
	for rows.Next() {
		var p history.ProductionReading
		var shift string
		if err := rows.Scan(
			&p.ID,
			&p.AnimalID,
			&p.Date,
			&shift,
			&p.Liters,
			&p.RecordedAt,
		); err != nil {
			return nil, err
		}
		p.Shift = history.Shift(shift)
		out = append(out, p)
	}
	return out, rows.Err()
}
