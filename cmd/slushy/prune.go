package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jneufeld/slushy/pkg/cli"
	"github.com/jneufeld/slushy/pkg/results/retention"
	"github.com/jneufeld/slushy/pkg/results/storage"
)

var pruneFlags struct {
	maxAge     time.Duration
	maxRecords int
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete recorded runs past the retention limits",
	Long: `Apply the retention policy once: delete runs older than max_age, then
keep only the newest max_records runs. Limits default to the storage.retention
section; flags override them. watch applies the same policy on the
prune_schedule cron schedule.

Examples:
  slushy prune
  slushy prune --max-age 720h --max-records 1000`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().DurationVar(&pruneFlags.maxAge, "max-age", 0, "delete runs older than this (default from config)")
	pruneCmd.Flags().IntVar(&pruneFlags.maxRecords, "max-records", 0, "keep only the newest N runs (default from config)")
}

func runPrune(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()

	rcfg := retention.FromConfig(cfg.Storage.Retention)
	if cmd.Flags().Changed("max-age") {
		rcfg.MaxAge = pruneFlags.maxAge
	}
	if cmd.Flags().Changed("max-records") {
		rcfg.MaxRecords = pruneFlags.maxRecords
	}

	store, err := storage.Open(&cfg.Storage)
	if err != nil {
		return cli.NewCommandError("prune", fmt.Errorf("failed to open storage: %w", err))
	}
	defer func() { _ = store.Close() }()

	pruner := retention.NewPruner(store, rcfg)
	deleted, err := pruner.Prune(cmd.Context())
	if err != nil {
		return cli.NewCommandError("prune", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d run(s) deleted\n", deleted)
	return nil
}
