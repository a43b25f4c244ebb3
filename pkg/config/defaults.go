package config

import "time"

// Default values for configuration fields.
const (
	// Parser defaults
	DefaultParserDigitMode     = "decimal"
	DefaultParserMaxDepth      = 256
	DefaultParserMaxInputBytes = int64(10 * 1024 * 1024) // 10MB

	// Storage defaults
	DefaultStorageEnabled       = false
	DefaultStorageBackend       = "sqlite"
	DefaultSQLitePath           = "data/runs.db"
	DefaultSQLiteDriver         = "sqlite"
	DefaultSQLiteMaxOpenConns   = 4
	DefaultSQLiteWALMode        = true
	DefaultSQLiteBusyTimeout    = 5 * time.Second
	DefaultRetentionMaxAge      = time.Duration(0)
	DefaultRetentionMaxRecords  = 0
	DefaultRetentionSchedule    = "0 3 * * *"
	DefaultWatchDebounce        = 100 * time.Millisecond
	DefaultTelemetryLogLevel    = "info"
	DefaultTelemetryLogFormat   = "text"
	DefaultTelemetryLogSource   = false
	DefaultMetricsEnabled       = true
	DefaultMetricsNamespace     = "slushy"
	DefaultMetricsSubsystem     = "packets"
	DefaultMetricsListenAddress = ""
)

// DefaultDividers are the default solver marker documents.
var DefaultDividers = []string{"[[2]]", "[[6]]"}

// DefaultWatchExtensions are the default watched file extensions.
var DefaultWatchExtensions = []string{".txt"}

// NewDefaultConfig returns a configuration with every field at its default.
// LoadConfig decodes YAML on top of this value so that boolean fields which
// default to true keep their default when the file omits them.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Storage: StorageConfig{
			Enabled: DefaultStorageEnabled,
			SQLite: SQLiteConfig{
				WALMode: DefaultSQLiteWALMode,
			},
			Retention: RetentionConfig{
				PruneSchedule: DefaultRetentionSchedule,
			},
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				AddSource: DefaultTelemetryLogSource,
			},
			Metrics: MetricsConfig{
				Enabled:       DefaultMetricsEnabled,
				ListenAddress: DefaultMetricsListenAddress,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-valued field with its default. Boolean
// fields are left alone; their defaults come from NewDefaultConfig.
func ApplyDefaults(cfg *Config) {
	// Parser defaults
	if cfg.Parser.DigitMode == "" {
		cfg.Parser.DigitMode = DefaultParserDigitMode
	}
	if cfg.Parser.MaxDepth == 0 {
		cfg.Parser.MaxDepth = DefaultParserMaxDepth
	}
	if cfg.Parser.MaxInputBytes == 0 {
		cfg.Parser.MaxInputBytes = DefaultParserMaxInputBytes
	}

	// Solver defaults
	if len(cfg.Solver.Dividers) == 0 {
		cfg.Solver.Dividers = append([]string(nil), DefaultDividers...)
	}

	// Storage defaults
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultStorageBackend
	}
	if cfg.Storage.SQLite.Path == "" {
		cfg.Storage.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Storage.SQLite.Driver == "" {
		cfg.Storage.SQLite.Driver = DefaultSQLiteDriver
	}
	if cfg.Storage.SQLite.MaxOpenConns == 0 {
		cfg.Storage.SQLite.MaxOpenConns = DefaultSQLiteMaxOpenConns
	}
	if cfg.Storage.SQLite.BusyTimeout == 0 {
		cfg.Storage.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}

	// Watch defaults
	if cfg.Watch.DebounceInterval == 0 {
		cfg.Watch.DebounceInterval = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultTelemetryLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultTelemetryLogFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
