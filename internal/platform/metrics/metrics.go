// Package metrics expone los contadores Prometheus del servicio.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnimalsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "livestock",
		Name:      "animals_registered_total",
		Help:      "Animales dados de alta.",
	})
	AnimalsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "livestock",
		Name:      "animals_updated_total",
		Help:      "Ediciones de animales aplicadas.",
	})
	AnimalsDeactivated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "livestock",
		Name:      "animals_deactivated_total",
		Help:      "Bajas lógicas de animales.",
	})
	EventsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "livestock",
		Name:      "events_recorded_total",
		Help:      "Eventos agregados al historial.",
	})
	ProductionRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "livestock",
		Name:      "production_recorded_total",
		Help:      "Lecturas de producción agregadas.",
	})
)

// Handler expone /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
