package session

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	prometheusNamespace = "metaminer"
	resultLabel         = "result"
)

// Metrics are the session's Prometheus collectors
type Metrics struct {
	// updates counts evaluated passes, stale ones included
	updates prometheus.Counter
	// updateDuration observes how long one pass takes
	updateDuration prometheus.Histogram
	// staleUpdates counts passes discarded because a newer state was submitted
	staleUpdates prometheus.Counter
	// filteredGenomes is the genome count of the last delivered update
	filteredGenomes prometheus.Gauge
	// saves counts snapshot saves by result
	saves *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg when it is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      "updates_total",
			Help:      "Number of evaluated dashboard updates.",
		}),
		updateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: prometheusNamespace,
			Name:      "update_duration_seconds",
			Help:      "Time spent filtering and rendering one update.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		staleUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      "stale_updates_total",
			Help:      "Number of updates discarded because a newer state was submitted.",
		}),
		filteredGenomes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: prometheusNamespace,
			Name:      "filtered_genomes",
			Help:      "Genome count of the last delivered update.",
		}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      "saves_total",
			Help:      "Number of snapshot saves by result.",
		}, []string{resultLabel}),
	}

	if reg != nil {
		reg.MustRegister(m.updates)
		reg.MustRegister(m.updateDuration)
		reg.MustRegister(m.staleUpdates)
		reg.MustRegister(m.filteredGenomes)
		reg.MustRegister(m.saves)
	}
	return m
}

func (m *Metrics) registerSave(ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	m.saves.With(prometheus.Labels{resultLabel: result}).Inc()
}
