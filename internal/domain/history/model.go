package history

import "time"

// Event es una entrada inmutable del historial clínico/reproductivo.
// El ledger es write-once: nunca se actualiza ni se borra una entrada.
type Event struct {
	ID          string
	AnimalID    string
	EventTypeID string
	Date        time.Time
	Description string
	Cost        float64 // >= 0; default 0
	PerformedBy string  // opcional
	RecordedAt  time.Time
}

// EventEntry anota el evento con su tipo resuelto: nombre y categoría para
// icono/agrupación. La anotación la hace el ledger para que todos los
// consumidores vean la misma agrupación.
type EventEntry struct {
	Event

	TypeName string
	Category string
}

// Shift es la jornada de ordeño.
// @Enum Mañana, Tarde
type Shift string

const (
	ShiftMorning   Shift = "Mañana"
	ShiftAfternoon Shift = "Tarde"
)

func (s Shift) Valid() bool {
	return s == ShiftMorning || s == ShiftAfternoon
}

// ProductionReading es una lectura inmutable de producción de leche.
// Solo válida para hembras de especie lechera.
type ProductionReading struct {
	ID         string
	AnimalID   string
	Date       time.Time
	Shift      Shift
	Liters     float64 // > 0
	RecordedAt time.Time
}
