// Package config provides configuration management for slushy.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("slushy.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("slushy.yaml")
//
//  3. From an optional file (the CLI default):
//     cfg, err := config.LoadOrDefault("slushy.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SLUSHY_SECTION_FIELD.
// For example:
//
//   - SLUSHY_PARSER_DIGIT_MODE overrides parser.digit_mode
//   - SLUSHY_STORAGE_SQLITE_DRIVER overrides storage.sqlite.driver
//   - SLUSHY_SOLVER_DIVIDERS overrides solver.dividers (space separated)
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
//	if err := config.Initialize("slushy.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	cfg := config.GetConfig()
//
// For testing, prefer dependency injection with explicit Config instances
// rather than the global singleton.
package config
