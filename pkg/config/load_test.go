package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slushy.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
parser:
  digit_mode: "legacy"
  max_depth: 32

solver:
  dividers: ["[[1]]", "[[9]]"]

storage:
  enabled: true
  backend: "sqlite"
  sqlite:
    path: "./runs.db"
    driver: "sqlite3"
    busy_timeout: "2s"
  retention:
    max_age: "168h"
    max_records: 50

watch:
  debounce_interval: "250ms"

telemetry:
  logging:
    level: "debug"
    format: "json"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parser.DigitMode != "legacy" {
		t.Errorf("Parser.DigitMode = %q, want %q", cfg.Parser.DigitMode, "legacy")
	}
	if cfg.Parser.MaxDepth != 32 {
		t.Errorf("Parser.MaxDepth = %d, want 32", cfg.Parser.MaxDepth)
	}
	if !reflect.DeepEqual(cfg.Solver.Dividers, []string{"[[1]]", "[[9]]"}) {
		t.Errorf("Solver.Dividers = %v", cfg.Solver.Dividers)
	}
	if !cfg.Storage.Enabled {
		t.Error("Storage.Enabled = false, want true")
	}
	if cfg.Storage.SQLite.Driver != "sqlite3" {
		t.Errorf("Storage.SQLite.Driver = %q, want %q", cfg.Storage.SQLite.Driver, "sqlite3")
	}
	if cfg.Storage.SQLite.BusyTimeout != 2*time.Second {
		t.Errorf("Storage.SQLite.BusyTimeout = %v, want 2s", cfg.Storage.SQLite.BusyTimeout)
	}
	if cfg.Storage.Retention.MaxAge != 168*time.Hour {
		t.Errorf("Storage.Retention.MaxAge = %v, want 168h", cfg.Storage.Retention.MaxAge)
	}
	if cfg.Watch.DebounceInterval != 250*time.Millisecond {
		t.Errorf("Watch.DebounceInterval = %v, want 250ms", cfg.Watch.DebounceInterval)
	}
	if cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("Telemetry.Logging.Format = %q, want %q", cfg.Telemetry.Logging.Format, "json")
	}

	// Omitted fields keep their defaults, including booleans defaulting to true.
	if !cfg.Storage.SQLite.WALMode {
		t.Error("Storage.SQLite.WALMode = false, want default true")
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("Telemetry.Metrics.Enabled = false, want default true")
	}
	if cfg.Storage.SQLite.MaxOpenConns != DefaultSQLiteMaxOpenConns {
		t.Errorf("Storage.SQLite.MaxOpenConns = %d, want default", cfg.Storage.SQLite.MaxOpenConns)
	}
}

func TestLoadConfig_ExplicitFalseOverridesDefault(t *testing.T) {
	path := writeConfig(t, `
storage:
  sqlite:
    wal_mode: false
telemetry:
  metrics:
    enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Storage.SQLite.WALMode {
		t.Error("Storage.SQLite.WALMode = true, want false")
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("Telemetry.Metrics.Enabled = true, want false")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "parser: [unterminated")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse configuration file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
parser:
  digit_mode: "octal"
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Errors[0].Field != "parser.digit_mode" {
		t.Errorf("Field = %q, want %q", verr.Errors[0].Field, "parser.digit_mode")
	}
}

func TestLoadConfig_NegativeMaxDepthRejected(t *testing.T) {
	path := writeConfig(t, "parser:\n  max_depth: -1\n")

	_, err := LoadConfig(path)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Errors[0].Field != "parser.max_depth" {
		t.Errorf("Field = %q, want %q", verr.Errors[0].Field, "parser.max_depth")
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
parser:
  digit_mode: "decimal"
`)

	t.Setenv("SLUSHY_PARSER_DIGIT_MODE", "legacy")
	t.Setenv("SLUSHY_PARSER_MAX_DEPTH", "12")
	t.Setenv("SLUSHY_SOLVER_DIVIDERS", "[[3]] [[4,5]]")
	t.Setenv("SLUSHY_STORAGE_ENABLED", "true")
	t.Setenv("SLUSHY_STORAGE_BACKEND", "memory")
	t.Setenv("SLUSHY_WATCH_DEBOUNCE_INTERVAL", "1s")
	t.Setenv("SLUSHY_TELEMETRY_LOGGING_LEVEL", "warn")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parser.DigitMode != "legacy" {
		t.Errorf("Parser.DigitMode = %q, want %q", cfg.Parser.DigitMode, "legacy")
	}
	if cfg.Parser.MaxDepth != 12 {
		t.Errorf("Parser.MaxDepth = %d, want 12", cfg.Parser.MaxDepth)
	}
	if !reflect.DeepEqual(cfg.Solver.Dividers, []string{"[[3]]", "[[4,5]]"}) {
		t.Errorf("Solver.Dividers = %v", cfg.Solver.Dividers)
	}
	if !cfg.Storage.Enabled || cfg.Storage.Backend != "memory" {
		t.Errorf("Storage = %+v, want enabled memory backend", cfg.Storage)
	}
	if cfg.Watch.DebounceInterval != time.Second {
		t.Errorf("Watch.DebounceInterval = %v, want 1s", cfg.Watch.DebounceInterval)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("Telemetry.Logging.Level = %q, want %q", cfg.Telemetry.Logging.Level, "warn")
	}
}

func TestLoadConfigWithEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	path := writeConfig(t, "parser:\n  max_depth: 40\n")

	t.Setenv("SLUSHY_PARSER_MAX_DEPTH", "deep")
	t.Setenv("SLUSHY_STORAGE_ENABLED", "maybe")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Parser.MaxDepth != 40 {
		t.Errorf("Parser.MaxDepth = %d, want 40", cfg.Parser.MaxDepth)
	}
	if cfg.Storage.Enabled {
		t.Error("Storage.Enabled = true, want false")
	}
}

func TestLoadConfigWithEnvOverrides_ValidationAfterOverride(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("SLUSHY_STORAGE_SQLITE_DRIVER", "postgres")

	_, err := LoadConfigWithEnvOverrides(path)
	if err == nil {
		t.Fatal("expected validation error after override")
	}
	if !strings.Contains(err.Error(), "storage.sqlite.driver") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
		if err != nil {
			t.Fatalf("LoadOrDefault() error = %v", err)
		}
		if cfg.Parser.DigitMode != DefaultParserDigitMode {
			t.Errorf("Parser.DigitMode = %q, want default", cfg.Parser.DigitMode)
		}
	})

	t.Run("empty path applies env", func(t *testing.T) {
		t.Setenv("SLUSHY_PARSER_DIGIT_MODE", "legacy")
		cfg, err := LoadOrDefault("")
		if err != nil {
			t.Fatalf("LoadOrDefault() error = %v", err)
		}
		if cfg.Parser.DigitMode != "legacy" {
			t.Errorf("Parser.DigitMode = %q, want %q", cfg.Parser.DigitMode, "legacy")
		}
	})

	t.Run("invalid file is still an error", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  backend: s3\n")
		if _, err := LoadOrDefault(path); err == nil {
			t.Fatal("expected error for invalid file")
		}
	})
}
