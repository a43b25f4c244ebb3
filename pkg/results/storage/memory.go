package storage

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jneufeld/slushy/pkg/results"
)

// MemoryStorage implements results.Storage with an in-memory map.
type MemoryStorage struct {
	runs map[string]*results.Run
	mu   sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		runs: make(map[string]*results.Run),
	}
}

// Store saves a copy of run.
func (s *MemoryStorage) Store(ctx context.Context, run *results.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; exists {
		return results.NewStorageError("memory", "store", fmt.Errorf("duplicate run id %q", run.ID))
	}

	runCopy := *run
	s.runs[run.ID] = &runCopy
	return nil
}

// Get returns a copy of the run with the given id.
func (s *MemoryStorage) Get(ctx context.Context, id string) (*results.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, results.ErrNotFound
	}
	runCopy := *run
	return &runCopy, nil
}

// Query returns copies of matching runs, newest first.
func (s *MemoryStorage) Query(ctx context.Context, query *results.Query) ([]*results.Run, error) {
	s.mu.RLock()
	matched := make([]*results.Run, 0)
	for _, run := range s.runs {
		if query.Matches(run) {
			runCopy := *run
			matched = append(matched, &runCopy)
		}
	}
	s.mu.RUnlock()

	sortNewestFirst(matched)

	if query == nil {
		return matched, nil
	}

	start := min(query.Offset, len(matched))
	matched = matched[start:]
	if query.Limit > 0 && query.Limit < len(matched) {
		matched = matched[:query.Limit]
	}
	return matched, nil
}

// Count returns the number of matching runs.
func (s *MemoryStorage) Count(ctx context.Context, query *results.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, run := range s.runs {
		if query.Matches(run) {
			count++
		}
	}
	return count, nil
}

// DeleteBefore removes runs created strictly before cutoff.
func (s *MemoryStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, run := range s.runs {
		if run.CreatedAt.Before(cutoff) {
			delete(s.runs, id)
			deleted++
		}
	}
	return deleted, nil
}

// DeleteOldest removes all but the newest keep runs.
func (s *MemoryStorage) DeleteOldest(ctx context.Context, keep int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	if len(s.runs) <= keep {
		return 0, nil
	}

	all := make([]*results.Run, 0, len(s.runs))
	for _, run := range s.runs {
		all = append(all, run)
	}
	sortNewestFirst(all)

	var deleted int64
	for _, run := range all[keep:] {
		delete(s.runs, run.ID)
		deleted++
	}
	return deleted, nil
}

// Close is a no-op.
func (s *MemoryStorage) Close() error {
	return nil
}

// sortNewestFirst orders runs by CreatedAt descending, then by ID descending,
// matching the SQLite backend's ORDER BY.
func sortNewestFirst(runs []*results.Run) {
	slices.SortFunc(runs, func(a, b *results.Run) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
}
