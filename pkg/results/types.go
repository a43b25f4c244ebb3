package results

import (
	"context"
	"errors"
	"time"
)

// Status is the outcome of a solve run.
type Status string

const (
	// StatusSuccess marks a run that produced both answers.
	StatusSuccess Status = "success"

	// StatusError marks a run that failed to load or solve its input.
	StatusError Status = "error"
)

// ErrNotFound is returned by Storage.Get when no run has the given id.
var ErrNotFound = errors.New("run not found")

// Run is one recorded solve.
type Run struct {
	// ID is a random UUID assigned when the run is recorded.
	ID string `json:"id"`

	// Input is the path of the solved file.
	Input string `json:"input"`

	// InputHash is the hex SHA-256 of the input content.
	InputHash string `json:"input_hash"`

	// DigitMode is the parser digit mode ("decimal" or "legacy").
	DigitMode string `json:"digit_mode"`

	Pairs           int `json:"pairs"`
	Documents       int `json:"documents"`
	OrderedIndexSum int `json:"ordered_index_sum"`
	DecoderKey      int `json:"decoder_key"`

	// Duration is the time spent solving, excluding storage.
	Duration time.Duration `json:"duration_ns"`

	Status Status `json:"status"`

	// Error holds the failure message when Status is StatusError.
	Error string `json:"error,omitempty"`

	// CreatedAt is when the run was recorded, in UTC.
	CreatedAt time.Time `json:"created_at"`
}

// Query filters stored runs. Zero fields match everything.
type Query struct {
	InputHash string
	Status    Status

	// Since and Until bound CreatedAt, both inclusive.
	Since *time.Time
	Until *time.Time

	// Limit caps the number of runs returned; 0 means no limit.
	Limit  int
	Offset int
}

// Matches reports whether run satisfies every filter in q. Limit and Offset
// are ignored.
func (q *Query) Matches(run *Run) bool {
	if q == nil {
		return true
	}
	if q.InputHash != "" && run.InputHash != q.InputHash {
		return false
	}
	if q.Status != "" && run.Status != q.Status {
		return false
	}
	if q.Since != nil && run.CreatedAt.Before(*q.Since) {
		return false
	}
	if q.Until != nil && run.CreatedAt.After(*q.Until) {
		return false
	}
	return true
}

// Storage persists runs.
//
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists a run. Storing a run whose ID already exists is an error.
	Store(ctx context.Context, run *Run) error

	// Get returns the run with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Run, error)

	// Query returns matching runs, newest first.
	Query(ctx context.Context, query *Query) ([]*Run, error)

	// Count returns the number of matching runs. Limit and Offset are ignored.
	Count(ctx context.Context, query *Query) (int64, error)

	// DeleteBefore removes runs created strictly before cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOldest removes all but the newest keep runs.
	DeleteOldest(ctx context.Context, keep int) (int64, error)

	// Close releases resources held by the backend.
	Close() error
}
