// Package telemetry groups the observability packages used by slushy.
//
//   - logging: structured logging over log/slog, with run and input context
//   - metrics: Prometheus counters and histograms for loads, solves and stored runs
//   - health: liveness and readiness endpoints served by the watch command
package telemetry
