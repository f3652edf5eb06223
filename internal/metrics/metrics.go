// Package metrics exposes Prometheus counters for palette generation and the
// saved collection. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request kinds.
const (
	KindPalette    = "palette"
	KindVariations = "variations"
)

// Request outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeRateLimited = "rate_limited"
	OutcomeInvalid     = "invalid_response"
	OutcomeFailed      = "failed"
)

// Metrics owns its own registry so tests and multiple servers never collide on
// the global default registerer.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts generation requests by kind and outcome
	RequestsTotal *prometheus.CounterVec

	// RequestDuration tracks model round-trip latency by kind
	RequestDuration *prometheus.HistogramVec

	// SavedPalettes is the size of the saved collection
	SavedPalettes prometheus.Gauge
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "brpalette_generation_requests_total",
			Help: "Total generation requests by kind and outcome",
		}, []string{"kind", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "brpalette_generation_duration_seconds",
			Help:    "Generation round-trip duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
		}, []string{"kind"}),
		SavedPalettes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "brpalette_saved_palettes",
			Help: "Number of saved palettes",
		}),
	}
}

// ObserveRequest records one finished generation request.
func (m *Metrics) ObserveRequest(kind, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(kind, outcome).Inc()
	m.RequestDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// SetSaved records the saved collection size.
func (m *Metrics) SetSaved(n int) {
	if m == nil {
		return
	}
	m.SavedPalettes.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
