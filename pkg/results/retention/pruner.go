package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/jneufeld/slushy/pkg/config"
	"github.com/jneufeld/slushy/pkg/results"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// MaxAge deletes runs older than this. 0 keeps runs forever.
	MaxAge time.Duration

	// MaxRecords keeps only the newest N runs. 0 means unlimited.
	MaxRecords int

	// PruneSchedule is a standard cron expression used by Start.
	// Empty disables scheduled pruning.
	PruneSchedule string
}

// FromConfig converts the storage retention section.
func FromConfig(cfg config.RetentionConfig) *Config {
	return &Config{
		MaxAge:        cfg.MaxAge,
		MaxRecords:    cfg.MaxRecords,
		PruneSchedule: cfg.PruneSchedule,
	}
}

// PruneObserver is notified of pruned runs. The telemetry metrics collector
// satisfies it.
type PruneObserver interface {
	RecordRunsPruned(n int64)
}

// Pruner enforces retention on stored runs.
type Pruner struct {
	storage   results.Storage
	config    *Config
	observer  PruneObserver
	logger    *slog.Logger
	now       func() time.Time
	scheduler *Scheduler
}

// Option configures a Pruner.
type Option func(*Pruner)

// WithObserver reports pruned counts to o.
func WithObserver(o PruneObserver) Option {
	return func(p *Pruner) {
		p.observer = o
	}
}

// WithClock overrides the time source used to compute the age cutoff.
func WithClock(now func() time.Time) Option {
	return func(p *Pruner) {
		p.now = now
	}
}

// NewPruner creates a new retention pruner.
func NewPruner(storage results.Storage, cfg *Config, opts ...Option) *Pruner {
	if cfg == nil {
		cfg = &Config{}
	}

	p := &Pruner{
		storage: storage,
		config:  cfg,
		logger:  slog.Default().With("component", "results.retention"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.scheduler = NewScheduler(p)

	return p
}

// Prune deletes runs older than MaxAge, then trims the store to MaxRecords.
// Either phase is skipped when its limit is zero. Returns the total number of
// runs deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.MaxAge > 0 {
		cutoff := p.now().Add(-p.config.MaxAge)
		deleted, err := p.storage.DeleteBefore(ctx, cutoff)
		if err != nil {
			return totalDeleted, results.NewRetentionError("age", err)
		}
		totalDeleted += deleted
		p.logger.Debug("pruned runs by age",
			"deleted_count", deleted,
			"cutoff_time", cutoff,
		)
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.storage.DeleteOldest(ctx, p.config.MaxRecords)
		if err != nil {
			return totalDeleted, results.NewRetentionError("count", err)
		}
		totalDeleted += deleted
		p.logger.Debug("pruned runs by count",
			"deleted_count", deleted,
			"max_records", p.config.MaxRecords,
		)
	}

	if totalDeleted > 0 {
		p.logger.Info("run pruning completed",
			"total_deleted", totalDeleted,
			"max_age", p.config.MaxAge,
			"max_records", p.config.MaxRecords,
		)
		if p.observer != nil {
			p.observer.RecordRunsPruned(totalDeleted)
		}
	}

	return totalDeleted, nil
}

// Start starts scheduled pruning. It returns immediately.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops scheduled pruning and waits for a running prune to finish.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning, or nil.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}
