package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the asset registry.
type Metrics struct {
	AssetsRegistered       prometheus.Counter
	DuplicateRegistrations prometheus.Counter
	UnauthorizedAttempts   prometheus.Counter
	RegisterLatency        prometheus.Histogram
}

// New creates a Metrics instance with all asset registry metrics registered.
func New() *Metrics {
	return &Metrics{
		AssetsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokenbound_assets_registered_total",
			Help: "Total number of assets registered",
		}),
		DuplicateRegistrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokenbound_asset_duplicate_registrations_total",
			Help: "Register calls that found the asset already registered",
		}),
		UnauthorizedAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokenbound_asset_unauthorized_registrations_total",
			Help: "Register calls rejected because the caller does not own the token",
		}),
		RegisterLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tokenbound_asset_register_duration_seconds",
			Help:    "Duration of Register operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveRegister records the duration of a Register operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRegister(start time.Time) {
	m.RegisterLatency.Observe(time.Since(start).Seconds())
}
