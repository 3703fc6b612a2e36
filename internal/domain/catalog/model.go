package catalog

// Species es una entidad de referencia inmutable.
// MilkProducer es un atributo explícito: la elegibilidad lechera nunca se
// infiere del nombre de la especie.
type Species struct {
	ID           string
	Name         string
	MilkProducer bool
}

// Breed pertenece a exactamente una especie; sus opciones siempre se filtran
// por la especie seleccionada.
type Breed struct {
	ID        string
	SpeciesID string
	Name      string
}

// Location es la referencia de ubicación actual de un animal.
type Location struct {
	ID   string
	Name string
}

// EventType clasifica los eventos clínicos/reproductivos.
// Category agrupa las opciones del selector y decide el tratamiento visual.
type EventType struct {
	ID       string
	Name     string
	Category string
}
