// Package experiment holds the numbered experiment procedures and the
// registry that runs them by id.
package experiment

import (
	"context"
	"fmt"
	"sort"

	"github.com/cognicore/polarity/pkg/polarity/internalerr"
)

// Procedure runs one experiment
type Procedure func(ctx context.Context) error

// Entry is a registered procedure
type Entry struct {
	ID   int
	Name string
	Proc Procedure
}

// Registry maps experiment ids to procedures. It is built once at startup
// and only read afterwards.
type Registry struct {
	entries map[int]Entry
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[int]Entry)}
}

// Register adds a procedure under id. Ids are unique.
func (r *Registry) Register(id int, name string, proc Procedure) error {
	if proc == nil {
		return fmt.Errorf("question %d: nil procedure: %w", id, internalerr.ErrInvalidConfig)
	}
	if _, dup := r.entries[id]; dup {
		return fmt.Errorf("question %d already registered: %w", id, internalerr.ErrInvalidConfig)
	}
	r.entries[id] = Entry{ID: id, Name: name, Proc: proc}
	return nil
}

// Lookup returns the entry registered under id
func (r *Registry) Lookup(id int) (Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Entries returns all entries ordered by id
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RunAll runs the procedures for ids in the order given. Every id is
// resolved before anything runs, so an unknown id aborts without side effects.
func (r *Registry) RunAll(ctx context.Context, ids []int) error {
	procs := make([]Entry, 0, len(ids))
	for _, id := range ids {
		e, ok := r.entries[id]
		if !ok {
			return fmt.Errorf("unknown question %d: %w", id, internalerr.ErrInvalidConfig)
		}
		procs = append(procs, e)
	}

	for _, e := range procs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Proc(ctx); err != nil {
			return fmt.Errorf("question %d: %w", e.ID, err)
		}
	}
	return nil
}
