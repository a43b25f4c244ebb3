// Package logging provides structured logging for slushy.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - JSON, text and console output formats
//   - Configurable log levels (debug, info, warn, error)
//   - Context-aware logging with run IDs, input paths and command names
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger.Slog())
//
//	ctx = logging.WithRunID(ctx, run.ID)
//	logger.InfoContext(ctx, "solve finished", "pairs", 8)
//
// Log output goes to stderr by default so command results on stdout can be
// piped.
package logging
