package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the account registry.
type Metrics struct {
	AccountsCreated   prometheus.Counter
	GetOrCreateHits   prometheus.Counter
	CreationFailures  prometheus.Counter
	GetOrCreateLatency prometheus.Histogram
}

// New creates a Metrics instance with all account registry metrics registered.
func New() *Metrics {
	return &Metrics{
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokenbound_accounts_created_total",
			Help: "Total number of token-bound accounts created",
		}),
		GetOrCreateHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokenbound_account_get_or_create_hits_total",
			Help: "GetOrCreate calls that returned an existing account",
		}),
		CreationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tokenbound_account_creation_failures_total",
			Help: "Account materializations rejected by the store",
		}),
		GetOrCreateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tokenbound_account_get_or_create_duration_seconds",
			Help:    "Duration of GetOrCreate operations (registration critical path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveGetOrCreate records the duration of a GetOrCreate operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveGetOrCreate(start time.Time) {
	m.GetOrCreateLatency.Observe(time.Since(start).Seconds())
}
