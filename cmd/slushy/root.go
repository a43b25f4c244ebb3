package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jneufeld/slushy/pkg/cli"
	"github.com/jneufeld/slushy/pkg/config"
	"github.com/jneufeld/slushy/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// appLogger is the logger configured by setup.
	appLogger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "slushy",
	Short: "Parse, order and solve nested-list packet documents",
	Long: `Slushy reads packet documents (nested lists of non-negative integers such
as [1,[2,[3]],4]), compares them with the distress-signal ordering and solves
both halves of the puzzle:

  - the sum of the 1-based indices of pairs already in order
  - the decoder key: the product of the divider positions after sorting

Runs can be recorded to SQLite, inspected with history and re-solved on every
save with watch.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "slushy.yaml", "config file path (defaults are used when it does not exist)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// setup loads configuration and installs the configured logger as the slog
// default before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	config.SetConfig(cfg)

	logCfg := logging.FromConfig(cfg.Telemetry.Logging)
	logCfg.Writer = cmd.ErrOrStderr()
	logger, err := logging.New(logCfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger.Slog())
	appLogger = logger.With("command", cmd.Name())

	appLogger.Debug("configuration loaded",
		"config", cfgFile,
		"digit_mode", cfg.Parser.DigitMode,
		"storage_enabled", cfg.Storage.Enabled,
	)
	return nil
}
