package metrics

import (
	"github.com/jneufeld/slushy/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RunMetrics tracks stored runs and watch activity.
//
// Metrics:
//   - slushy_packets_runs_stored_total: Runs written by backend
//   - slushy_packets_runs_pruned_total: Runs removed by retention
//   - slushy_packets_reloads_total: Re-solves triggered by file changes
type RunMetrics struct {
	storedTotal  *prometheus.CounterVec
	prunedTotal  prometheus.Counter
	reloadsTotal prometheus.Counter
}

// NewRunMetrics creates and registers run metrics with the provided registry.
func NewRunMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RunMetrics {
	rm := &RunMetrics{
		storedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_stored_total",
				Help:      "Total number of solve runs stored",
			},
			[]string{"backend"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_pruned_total",
				Help:      "Total number of stored runs removed by retention",
			},
		),

		reloadsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "reloads_total",
				Help:      "Total number of re-solves triggered by file changes",
			},
		),
	}

	registry.MustRegister(
		rm.storedTotal,
		rm.prunedTotal,
		rm.reloadsTotal,
	)

	return rm
}

// RecordStored records one stored run.
func (rm *RunMetrics) RecordStored(backend string) {
	rm.storedTotal.WithLabelValues(backend).Inc()
}

// RecordPruned records pruned runs.
func (rm *RunMetrics) RecordPruned(n int64) {
	if n > 0 {
		rm.prunedTotal.Add(float64(n))
	}
}

// RecordReload records one watcher-triggered re-solve.
func (rm *RunMetrics) RecordReload() {
	rm.reloadsTotal.Inc()
}
