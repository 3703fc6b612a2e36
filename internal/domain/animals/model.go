package animals

import "time"

// Sex: M=Macho, H=Hembra.
// @Enum M, H
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "H"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// Animal es el registro maestro de un animal del hato.
type Animal struct {
	ID         string
	EarTag     string // único; inmutable después del alta
	Alias      string
	SpeciesID  string
	BreedID    string // opcional; debe pertenecer a SpeciesID
	Sex        Sex
	BirthDate  *time.Time
	LocationID string
	Origin     string
	FatherID   string // opcional; referencia débil a otro Animal
	MotherID   string // opcional; referencia débil a otro Animal
	PhotoRef   string // referencia opaca al storage de fotos
	Active     bool   // la baja es lógica, nunca física

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParentRef resume un padre/madre resuelto en tiempo de lectura.
// Known=false cubre tanto "sin asignar" como una referencia colgante.
type ParentRef struct {
	ID     string
	EarTag string
	Alias  string
	Known  bool
}

// Details es el animal enriquecido para la vista de detalle: nombres de
// catálogo resueltos, padres resumidos y edad calculada. Es un join de
// lectura, no estado almacenado, así siempre refleja los registros actuales.
type Details struct {
	Animal

	SpeciesName  string
	BreedName    string
	LocationName string
	Father       ParentRef
	Mother       ParentRef
	AgeYears     int
	AgeKnown     bool
}

// Filter acota List.
type Filter struct {
	IncludeInactive bool
	Sex             Sex // vacío = ambos
}
