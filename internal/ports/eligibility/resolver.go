package eligibility

import "context"

// Resolver decide si una especie es lechera. Es política configurable
// externamente: el ledger de producción y la capa de presentación consultan
// el mismo predicado.
type Resolver interface {
	IsMilkProducer(ctx context.Context, speciesID string) (bool, error)
}
