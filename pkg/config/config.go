package config

import "time"

// Config is the root configuration structure for slushy.
// It contains all configuration sections for the packet parser, the solver,
// result storage, file watching and telemetry.
type Config struct {
	// Parser contains packet parser settings (digit mode, limits).
	Parser ParserConfig `yaml:"parser"`

	// Solver contains settings for the decoder key computation.
	Solver SolverConfig `yaml:"solver"`

	// Storage contains configuration for persisting solve runs including
	// backend selection and retention.
	Storage StorageConfig `yaml:"storage"`

	// Watch contains configuration for the input file watcher.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ParserConfig contains configuration for the packet parser.
type ParserConfig struct {
	// DigitMode selects how digit runs are read: "decimal" reads a run of
	// digits as one integer, "legacy" reproduces the historical reader where
	// "<digit>0" reads as 10 and other digits are single values.
	// Default: "decimal"
	DigitMode string `yaml:"digit_mode"`

	// MaxDepth is the maximum list nesting depth, between 1 and
	// parser.MaxDepthLimit.
	// Default: 256
	MaxDepth int `yaml:"max_depth"`

	// MaxInputBytes is the maximum size of an input file in bytes.
	// Default: 10485760 (10MB)
	MaxInputBytes int64 `yaml:"max_input_bytes"`
}

// SolverConfig contains configuration for the solver.
type SolverConfig struct {
	// Dividers are the marker documents added before sorting.
	// Default: ["[[2]]", "[[6]]"]
	Dividers []string `yaml:"dividers"`
}

// StorageConfig contains configuration for storing solve runs.
type StorageConfig struct {
	// Enabled controls whether solve runs are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend is the storage backend: "sqlite" or "memory".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite-specific configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention contains pruning configuration for stored runs.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains configuration for the SQLite run store.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/runs.db"
	Path string `yaml:"path"`

	// Driver is the database/sql driver name: "sqlite" (pure Go) or
	// "sqlite3" (cgo).
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// WALMode enables Write-Ahead Logging mode.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains configuration for pruning stored runs.
type RetentionConfig struct {
	// MaxAge deletes runs older than this. Zero keeps runs forever.
	// Default: 0
	MaxAge time.Duration `yaml:"max_age"`

	// MaxRecords keeps only the newest N runs. Zero means unlimited.
	// Default: 0
	MaxRecords int `yaml:"max_records"`

	// PruneSchedule is a standard cron expression for pruning while watching.
	// Empty disables scheduled pruning.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`
}

// WatchConfig contains configuration for the input file watcher.
type WatchConfig struct {
	// DebounceInterval is the quiet period after a change before re-solving.
	// Default: 100ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// Extensions lists the file extensions that trigger a re-solve when a
	// directory is watched.
	// Default: [".txt"]
	Extensions []string `yaml:"extensions"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains configuration for structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format: "json", "text", "console".
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains configuration for Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	// Default: "slushy"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	// Default: "packets"
	Subsystem string `yaml:"subsystem"`

	// ListenAddress is where the watch command serves /metrics. Empty disables
	// the endpoint.
	// Default: ""
	ListenAddress string `yaml:"listen_address"`
}
