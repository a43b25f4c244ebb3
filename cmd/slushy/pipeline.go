package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jneufeld/slushy/pkg/cli"
	"github.com/jneufeld/slushy/pkg/config"
	"github.com/jneufeld/slushy/pkg/packet/ast"
	packetErrors "github.com/jneufeld/slushy/pkg/packet/errors"
	"github.com/jneufeld/slushy/pkg/packet/parser"
	"github.com/jneufeld/slushy/pkg/results"
	"github.com/jneufeld/slushy/pkg/results/storage"
	"github.com/jneufeld/slushy/pkg/solver"
	"github.com/jneufeld/slushy/pkg/telemetry/logging"
	"github.com/jneufeld/slushy/pkg/telemetry/metrics"
)

// currentConfig returns the configuration loaded by setup.
func currentConfig() *config.Config {
	if cfg := config.GetConfig(); cfg != nil {
		return cfg
	}
	return config.NewDefaultConfig()
}

// commandLogger returns the logger configured by setup, or a default one when
// setup has not run.
func commandLogger() *logging.Logger {
	if appLogger != nil {
		return appLogger
	}
	logger, _ := logging.New(logging.Config{})
	return logger
}

// newParser builds a parser from the parser section. A non-empty digitMode
// overrides the configured one.
func newParser(cfg *config.Config, digitMode string) (*parser.Parser, error) {
	if digitMode == "" {
		digitMode = cfg.Parser.DigitMode
	}
	mode, err := parser.ParseDigitMode(digitMode)
	if err != nil {
		return nil, cli.NewConfigError("digit-mode", err.Error())
	}

	return parser.NewParser().
		WithDigitMode(mode).
		WithMaxDepth(cfg.Parser.MaxDepth).
		WithMaxInputBytes(cfg.Parser.MaxInputBytes), nil
}

// dividers parses the --divider values, or the configured dividers when none
// were given.
func dividers(cfg *config.Config, p *parser.Parser, flagValues []string) ([]*ast.Value, error) {
	texts := flagValues
	if len(texts) == 0 {
		texts = cfg.Solver.Dividers
	}
	divs, err := solver.ParseDividers(p, texts)
	if err != nil {
		return nil, cli.NewConfigError("divider", err.Error())
	}
	return divs, nil
}

// errorType returns the packet error type of err for metric labels.
func errorType(err error) string {
	var perr *packetErrors.Error
	if errors.As(err, &perr) {
		return string(perr.Type)
	}
	return "other"
}

// solveResult is what solve and watch print for one input.
type solveResult struct {
	Input string `json:"input"`
	RunID string `json:"run_id,omitempty"`
	*solver.Report
}

func (r *solveResult) String() string {
	var sb strings.Builder
	positions := make([]string, len(r.DecoderKey.Positions))
	for i, p := range r.DecoderKey.Positions {
		positions[i] = fmt.Sprint(p)
	}

	fmt.Fprintf(&sb, "input:             %s\n", r.Input)
	fmt.Fprintf(&sb, "pairs:             %d\n", r.Pairs)
	fmt.Fprintf(&sb, "ordered pairs:     %v\n", r.OrderedPairs)
	fmt.Fprintf(&sb, "ordered index sum: %d\n", r.OrderedIndexSum)
	fmt.Fprintf(&sb, "decoder key:       %d (dividers at %s)\n", r.DecoderKey.Product, strings.Join(positions, ", "))
	if r.RunID != "" {
		fmt.Fprintf(&sb, "run id:            %s\n", r.RunID)
	}
	return sb.String()
}

// pipeline loads, solves and optionally records one input file at a time.
type pipeline struct {
	parser   *parser.Parser
	solver   *solver.Solver
	metrics  *metrics.Collector
	recorder *results.Recorder // nil when runs are not recorded
	store    results.Storage   // nil when runs are not recorded
	logger   *logging.Logger
}

// run solves path. Failures are recorded when a recorder is configured and
// then returned.
func (p *pipeline) run(ctx context.Context, path string) (*solveResult, error) {
	ctx = logging.WithInput(ctx, path)
	start := time.Now()

	content, err := p.parser.ReadFile(path)
	if err != nil {
		p.metrics.RecordParseError(errorType(err))
		return nil, p.fail(ctx, path, nil, start, err)
	}

	pairs, err := p.parser.WithSource(path).ParsePairs(content)
	if err != nil {
		p.metrics.RecordParseError(errorType(err))
		return nil, p.fail(ctx, path, []byte(content), start, err)
	}
	p.metrics.RecordLoad(string(p.parser.DigitMode()), 2*len(pairs), time.Since(start))

	report, err := p.solver.Solve(ctx, pairs)
	if err != nil {
		return nil, p.fail(ctx, path, []byte(content), start, err)
	}

	result := &solveResult{Input: path, Report: report}
	if p.recorder != nil {
		run, err := p.recorder.RecordSuccess(ctx, p.input(path, []byte(content)), report)
		if err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
		result.RunID = run.ID
		ctx = logging.WithRunID(ctx, run.ID)
	}

	p.logger.InfoContext(ctx, "input solved",
		"pairs", report.Pairs,
		"ordered_index_sum", report.OrderedIndexSum,
		"decoder_key", report.DecoderKey.Product,
		"duration_ms", report.Duration.Milliseconds(),
	)
	return result, nil
}

func (p *pipeline) fail(ctx context.Context, path string, content []byte, start time.Time, cause error) error {
	if p.recorder == nil {
		return cause
	}
	if _, err := p.recorder.RecordFailure(ctx, p.input(path, content), time.Since(start), cause); err != nil {
		p.logger.WarnContext(ctx, "failed to record failed run", "error", err)
	}
	return cause
}

func (p *pipeline) input(path string, content []byte) results.Input {
	return results.Input{
		Path:      path,
		Content:   content,
		DigitMode: string(p.parser.DigitMode()),
	}
}

// pipelineOptions are the per-command overrides for newPipeline.
type pipelineOptions struct {
	digitMode string
	dividers  []string
	record    bool
}

// newPipeline wires the parser, solver, metrics and, when recording, the run
// store. The returned close function releases the store.
func newPipeline(cfg *config.Config, collector *metrics.Collector, opts pipelineOptions) (*pipeline, func() error, error) {
	p, err := newParser(cfg, opts.digitMode)
	if err != nil {
		return nil, nil, err
	}
	divs, err := dividers(cfg, p, opts.dividers)
	if err != nil {
		return nil, nil, err
	}

	logger := commandLogger()
	pl := &pipeline{
		parser: p,
		solver: solver.New(
			solver.WithDividers(divs...),
			solver.WithMetrics(collector),
			solver.WithLogger(logger.Slog().With("component", "solver")),
		),
		metrics: collector,
		logger:  logger,
	}

	closeFn := func() error { return nil }
	if opts.record || cfg.Storage.Enabled {
		store, err := storage.Open(&cfg.Storage)
		if err != nil {
			return nil, nil, cli.NewCommandError("open storage", err)
		}
		pl.store = store
		pl.recorder = results.NewRecorder(store,
			results.WithBackend(cfg.Storage.Backend),
			results.WithObserver(collector),
		)
		closeFn = store.Close
	}

	return pl, closeFn, nil
}

// newCollector builds a metrics collector on its own registry. Only watch
// lives long enough to be scraped, so it is the only command that serves one.
func newCollector(cfg *config.Config) *metrics.Collector {
	mcfg := cfg.Telemetry.Metrics
	return metrics.NewCollector(&mcfg, nil)
}

// oneShotCollector returns a disabled collector for commands that exit before
// anything could scrape them.
func oneShotCollector(cfg *config.Config) *metrics.Collector {
	mcfg := cfg.Telemetry.Metrics
	mcfg.Enabled = false
	return metrics.NewCollector(&mcfg, nil)
}
