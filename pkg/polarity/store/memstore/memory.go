package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/cognicore/polarity/pkg/polarity/internalerr"
	"github.com/cognicore/polarity/pkg/polarity/store"
)

// Store is an in-memory implementation of store.Store
type Store struct {
	mu   sync.RWMutex
	runs []store.Run
	byID map[string]int
}

// New creates an empty memory store
func New() *Store {
	return &Store{byID: make(map[string]int)}
}

// Close is a no-op
func (s *Store) Close() error { return nil }

// SaveRun stores or replaces a run
func (s *Store) SaveRun(ctx context.Context, r store.Run) (string, error) {
	r = store.Prepare(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.byID[r.ID]; ok {
		s.runs[idx] = r
		return r.ID, nil
	}
	s.byID[r.ID] = len(s.runs)
	s.runs = append(s.runs, r)
	return r.ID, nil
}

// GetRun looks up a run by ID
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return s.runs[idx], nil
}

// ListRuns returns runs in insertion order
func (s *Store) ListRuns(ctx context.Context, question int, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Run
	for _, r := range s.runs {
		if question > 0 && r.Question != question {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
