// Package metrics provides Prometheus metrics for slushy.
//
// # Metrics Categories
//
//   - Parse Metrics: documents parsed, load failures by error type, load duration
//   - Solve Metrics: comparator results, solves by status, solve duration
//   - Run Metrics: stored runs, pruned runs, watcher reloads
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	s := solver.New(solver.WithMetrics(collector))
//
//	mux := http.NewServeMux()
//	mux.Handle("/metrics", collector.Handler())
//
// All metric names are prefixed with the configured namespace and subsystem
// (slushy_packets_ by default).
package metrics
