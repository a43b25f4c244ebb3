package metrics

import (
	"time"

	"github.com/jneufeld/slushy/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric slushy exports and the registry they
// are registered with. A Collector built from a disabled config accepts every
// call and records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	parseMetrics *ParseMetrics
	solveMetrics *SolveMetrics
	runMetrics   *RunMetrics
}

// NewCollector creates a collector and registers its metrics with registry.
// If registry is nil a fresh registry is created. Empty namespace or
// subsystem fall back to the configuration defaults.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "slushy", Subsystem: "packets"}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:       cfg,
		registry:     registry,
		parseMetrics: NewParseMetrics(cfg, registry),
		solveMetrics: NewSolveMetrics(cfg, registry),
		runMetrics:   NewRunMetrics(cfg, registry),
	}
}

// RecordLoad records a successful load of an input.
//
// Parameters:
//   - mode: digit mode the parser ran with ("decimal", "legacy")
//   - documents: number of documents read
//   - duration: time spent reading and parsing
func (c *Collector) RecordLoad(mode string, documents int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.parseMetrics.RecordLoad(mode, documents, duration)
}

// RecordParseError records a failed load by error type ("malformed",
// "unpaired", "limit", "io").
func (c *Collector) RecordParseError(errType string) {
	if !c.config.Enabled {
		return
	}

	c.parseMetrics.RecordError(errType)
}

// RecordComparisons adds one solve's comparator results.
func (c *Collector) RecordComparisons(less, equal, greater int) {
	if !c.config.Enabled {
		return
	}

	c.solveMetrics.RecordComparisons(less, equal, greater)
}

// RecordSolve records a finished solve with its status ("success", "error").
func (c *Collector) RecordSolve(status string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.solveMetrics.RecordSolve(status, duration)
}

// RecordRunStored records a run written to the given storage backend.
func (c *Collector) RecordRunStored(backend string) {
	if !c.config.Enabled {
		return
	}

	c.runMetrics.RecordStored(backend)
}

// RecordRunsPruned records runs deleted by retention.
func (c *Collector) RecordRunsPruned(n int64) {
	if !c.config.Enabled {
		return
	}

	c.runMetrics.RecordPruned(n)
}

// RecordReload records a re-solve triggered by the file watcher.
func (c *Collector) RecordReload() {
	if !c.config.Enabled {
		return
	}

	c.runMetrics.RecordReload()
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
