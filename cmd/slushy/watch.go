package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/jneufeld/slushy/pkg/cli"
	"github.com/jneufeld/slushy/pkg/config"
	"github.com/jneufeld/slushy/pkg/results"
	"github.com/jneufeld/slushy/pkg/results/retention"
	"github.com/jneufeld/slushy/pkg/server"
	"github.com/jneufeld/slushy/pkg/telemetry/health"
	"github.com/jneufeld/slushy/pkg/telemetry/metrics"
	"github.com/jneufeld/slushy/pkg/watch"
)

var watchFlags struct {
	format      string
	digitMode   string
	dividers    []string
	record      bool
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Re-solve an input every time it changes",
	Long: `Solve a pair file, then solve it again after every save. When <path> is a
directory every file with a watched extension (watch.extensions) is solved
when it changes.

With --metrics-addr (or telemetry.metrics.listen_address) an HTTP server
exposes /metrics, /healthz and /readyz. Readiness fails while the last solve
failed or the run store is unreachable.

When runs are recorded the retention policy is applied on the
storage.retention.prune_schedule cron schedule.

Examples:
  slushy watch input.txt
  slushy watch day13/ --record --metrics-addr 127.0.0.1:9090`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.format, "format", "f", "text", "output format: text, json")
	watchCmd.Flags().StringVar(&watchFlags.digitMode, "digit-mode", "", "digit mode: decimal, legacy (default from config)")
	watchCmd.Flags().StringArrayVar(&watchFlags.dividers, "divider", nil, "divider document, repeatable (default from config)")
	watchCmd.Flags().BoolVar(&watchFlags.record, "record", false, "record every run in the configured store")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve /metrics and health endpoints on this address (default from config)")
}

// lastOutcome remembers the result of the latest solve for readiness.
type lastOutcome struct {
	mu  sync.Mutex
	err error
}

func (l *lastOutcome) set(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

func (l *lastOutcome) check(context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return fmt.Errorf("last solve failed: %w", l.err)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	formatter, err := cli.NewFormatter(watchFlags.format)
	if err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	cfg := currentConfig()
	logger := commandLogger()
	collector := newCollector(cfg)

	pl, closeStore, err := newPipeline(cfg, collector, pipelineOptions{
		digitMode: watchFlags.digitMode,
		dividers:  watchFlags.dividers,
		record:    watchFlags.record,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	checker := health.New(2 * time.Second)
	outcome := &lastOutcome{}
	checker.RegisterCheck("input", outcome.check)

	if pl.store != nil {
		pruner, err := startRetention(ctx, cfg, pl.store, collector, checker)
		if err != nil {
			return err
		}
		defer pruner.Stop()
	}

	addr := watchFlags.metricsAddr
	if addr == "" {
		addr = cfg.Telemetry.Metrics.ListenAddress
	}
	if addr != "" {
		srv := server.New(addr, telemetryHandler(collector, checker), server.WithLogger(logger.Slog().With("component", "server")))
		if err := srv.Start(ctx); err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer func() { _ = srv.Shutdown(context.Background()) }()
	}

	// Solves run one at a time; a change during a solve waits for it.
	var solveMu sync.Mutex
	out := cmd.OutOrStdout()
	solveAndPrint := func(p string) error {
		solveMu.Lock()
		defer solveMu.Unlock()

		result, err := pl.run(ctx, p)
		outcome.set(err)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return nil
		}
		return formatter.FormatTo(out, result)
	}

	if info, err := os.Stat(path); err != nil {
		return cli.NewCommandError("watch", err)
	} else if !info.IsDir() {
		if err := solveAndPrint(path); err != nil {
			return err
		}
	}

	fw, err := watch.NewFileWatcher(watch.FromConfig(path, &cfg.Watch), logger.Slog().With("component", "watch"))
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer func() { _ = fw.Stop() }()

	return fw.Watch(ctx, func(changed string) error {
		collector.RecordReload()
		return solveAndPrint(changed)
	})
}

// startRetention schedules pruning of store and registers the store as a
// readiness check.
func startRetention(ctx context.Context, cfg *config.Config, store results.Storage, collector *metrics.Collector, checker *health.Checker) (*retention.Pruner, error) {
	checker.RegisterCheck("storage", func(ctx context.Context) error {
		_, err := store.Count(ctx, nil)
		return err
	})

	pruner := retention.NewPruner(store, retention.FromConfig(cfg.Storage.Retention), retention.WithObserver(collector))
	if err := pruner.Start(ctx); err != nil {
		return nil, cli.NewCommandError("watch", err)
	}
	if next := pruner.NextPruning(); next != nil {
		commandLogger().Info("retention scheduled", "next_run", next.Format(time.RFC3339))
	}
	return pruner, nil
}

// telemetryHandler serves /metrics and the health endpoints.
func telemetryHandler(collector *metrics.Collector, checker *health.Checker) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	health.Register(mux, checker, Version)
	return mux
}
