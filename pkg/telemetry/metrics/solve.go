package metrics

import (
	"time"

	"github.com/jneufeld/slushy/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// SolveMetrics tracks comparator use and solve outcomes.
//
// Metrics:
//   - slushy_packets_comparisons_total: Comparator results by outcome
//   - slushy_packets_solves_total: Solves by status
//   - slushy_packets_solve_duration_seconds: Solve duration
type SolveMetrics struct {
	comparisonsTotal *prometheus.CounterVec
	solvesTotal      *prometheus.CounterVec
	solveDuration    prometheus.Histogram
}

// NewSolveMetrics creates and registers solve metrics with the provided registry.
func NewSolveMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *SolveMetrics {
	sm := &SolveMetrics{
		comparisonsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "comparisons_total",
				Help:      "Total number of document comparisons by result",
			},
			[]string{"result"},
		),

		solvesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "solves_total",
				Help:      "Total number of solves by status",
			},
			[]string{"status"},
		),

		solveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Duration of a solve in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
		),
	}

	registry.MustRegister(
		sm.comparisonsTotal,
		sm.solvesTotal,
		sm.solveDuration,
	)

	return sm
}

// RecordComparisons adds comparator results.
func (sm *SolveMetrics) RecordComparisons(less, equal, greater int) {
	sm.comparisonsTotal.WithLabelValues("less").Add(float64(less))
	sm.comparisonsTotal.WithLabelValues("equal").Add(float64(equal))
	sm.comparisonsTotal.WithLabelValues("greater").Add(float64(greater))
}

// RecordSolve records one solve.
func (sm *SolveMetrics) RecordSolve(status string, duration time.Duration) {
	sm.solvesTotal.WithLabelValues(status).Inc()
	sm.solveDuration.Observe(duration.Seconds())
}
