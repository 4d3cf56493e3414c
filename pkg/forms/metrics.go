package forms

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeValid   = "valid"
	outcomeInvalid = "invalid"
)

// Metrics tracks field clean outcomes and full clean latency.
// A nil *Metrics records nothing.
type Metrics struct {
	FieldCleans       *prometheus.CounterVec
	FullCleanDuration prometheus.Histogram
}

// NewMetrics registers the form metrics on reg. A nil reg uses the default
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		FieldCleans: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "forms_clean_total",
			Help: "Total number of field cleans by field kind and outcome",
		}, []string{"kind", "outcome"}),
		FullCleanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "forms_full_clean_duration_seconds",
			Help:    "Duration of full form cleans",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
}

// ObserveClean records one field clean.
func (m *Metrics) ObserveClean(kind, outcome string) {
	if m == nil {
		return
	}
	m.FieldCleans.WithLabelValues(kind, outcome).Inc()
}

// ObserveFullClean records the duration of a full clean.
func (m *Metrics) ObserveFullClean(d time.Duration) {
	if m == nil {
		return
	}
	m.FullCleanDuration.Observe(d.Seconds())
}
