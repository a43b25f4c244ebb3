package metrics

import (
	"time"

	"github.com/jneufeld/slushy/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseMetrics tracks input loading.
//
// Metrics:
//   - slushy_packets_documents_parsed_total: Documents parsed by digit mode
//   - slushy_packets_parse_errors_total: Failed loads by error type
//   - slushy_packets_parse_duration_seconds: Time to read and parse one input
type ParseMetrics struct {
	documentsTotal *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	parseDuration  *prometheus.HistogramVec
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		documentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "documents_parsed_total",
				Help:      "Total number of documents parsed",
			},
			[]string{"mode"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_errors_total",
				Help:      "Total number of inputs that failed to load",
			},
			[]string{"type"},
		),

		parseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_duration_seconds",
				Help:      "Duration of reading and parsing one input in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
			},
			[]string{"mode"},
		),
	}

	registry.MustRegister(
		pm.documentsTotal,
		pm.errorsTotal,
		pm.parseDuration,
	)

	return pm
}

// RecordLoad records the documents and duration of one successful load.
func (pm *ParseMetrics) RecordLoad(mode string, documents int, duration time.Duration) {
	pm.documentsTotal.WithLabelValues(mode).Add(float64(documents))
	pm.parseDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordError records one failed load.
func (pm *ParseMetrics) RecordError(errType string) {
	pm.errorsTotal.WithLabelValues(errType).Inc()
}
