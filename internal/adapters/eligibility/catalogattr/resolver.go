// Package catalogattr resuelve la elegibilidad lechera leyendo el atributo
// de la especie en el Catalog Store. La elegibilidad es dato del catálogo,
// nunca se infiere del nombre de la especie.
package catalogattr

import (
	"context"
	"errors"
	"os"
	"strings"

	"livestock-registry/internal/domain/catalog"
)

// Species es el lookup que el resolver necesita del catálogo.
// Lo satisface *catalog.Service.
type Species interface {
	GetSpecies(ctx context.Context, id string) (catalog.Species, error)
}

type Resolver struct {
	species  Species
	allowAll bool
}

// NewResolver crea un resolver sobre el catálogo.
// Si ALLOW_ALL_MILK_SPECIES=true (env), toda especie es lechera (modo dev).
func NewResolver(species Species) *Resolver {
	allowAll := strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_ALL_MILK_SPECIES")), "true")
	return &Resolver{
		species:  species,
		allowAll: allowAll,
	}
}

// IsMilkProducer responde si la especie produce leche. Especie desconocida
// propaga el error del catálogo; la política no adivina.
func (r *Resolver) IsMilkProducer(ctx context.Context, speciesID string) (bool, error) {
	speciesID = strings.TrimSpace(speciesID)
	if speciesID == "" {
		return false, errors.New("species id required")
	}

	if r.allowAll {
		return true, nil
	}

	s, err := r.species.GetSpecies(ctx, speciesID)
	if err != nil {
		return false, err
	}
	return s.MilkProducer, nil
}
