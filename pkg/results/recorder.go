package results

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jneufeld/slushy/pkg/solver"
)

// Input describes the file a run was computed from.
type Input struct {
	Path      string
	Content   []byte
	DigitMode string
}

// StoreObserver is notified after a run is stored. The telemetry metrics
// collector satisfies it.
type StoreObserver interface {
	RecordRunStored(backend string)
}

// Recorder turns solve outcomes into stored runs.
type Recorder struct {
	storage  Storage
	backend  string
	observer StoreObserver
	logger   *slog.Logger
	now      func() time.Time
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithBackend names the storage backend in logs and metrics.
func WithBackend(name string) RecorderOption {
	return func(r *Recorder) {
		r.backend = name
	}
}

// WithObserver reports stored runs to o.
func WithObserver(o StoreObserver) RecorderOption {
	return func(r *Recorder) {
		r.observer = o
	}
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		r.now = now
	}
}

// NewRecorder creates a recorder writing to storage.
func NewRecorder(storage Storage, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		storage: storage,
		backend: "unknown",
		logger:  slog.Default().With("component", "results.recorder"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RecordSuccess stores a run built from a successful solve.
func (r *Recorder) RecordSuccess(ctx context.Context, in Input, report *solver.Report) (*Run, error) {
	run := r.newRun(in)
	run.Status = StatusSuccess
	run.Pairs = report.Pairs
	run.Documents = report.Documents
	run.OrderedIndexSum = report.OrderedIndexSum
	run.DecoderKey = report.DecoderKey.Product
	run.Duration = report.Duration

	return run, r.store(ctx, run)
}

// RecordFailure stores a run for an input that failed to load or solve.
func (r *Recorder) RecordFailure(ctx context.Context, in Input, duration time.Duration, cause error) (*Run, error) {
	run := r.newRun(in)
	run.Status = StatusError
	run.Duration = duration
	if cause != nil {
		run.Error = cause.Error()
	}

	return run, r.store(ctx, run)
}

func (r *Recorder) newRun(in Input) *Run {
	return &Run{
		ID:        uuid.New().String(),
		Input:     in.Path,
		InputHash: HashContent(in.Content),
		DigitMode: in.DigitMode,
		CreatedAt: r.now().UTC(),
	}
}

func (r *Recorder) store(ctx context.Context, run *Run) error {
	if err := r.storage.Store(ctx, run); err != nil {
		r.logger.Error("failed to store run",
			"run_id", run.ID,
			"backend", r.backend,
			"error", err,
		)
		return err
	}

	if r.observer != nil {
		r.observer.RecordRunStored(r.backend)
	}

	r.logger.Debug("run stored",
		"run_id", run.ID,
		"status", run.Status,
		"input", run.Input,
	)
	return nil
}
