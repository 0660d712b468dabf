// Package memory provides an in-memory core.Store.
//
// It is the storage equivalent of a scratch buffer: nothing survives the
// process. Useful for tests and for ephemeral boards.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/corkboard/pkg/core"
)

// Store implements core.Store backed by process memory.
type Store struct {
	mu      sync.Mutex
	notes   []core.Note
	present bool
}

// NewStore creates an empty in-memory store (record absent).
func NewStore() *Store {
	return &Store{}
}

// Initialize implements core.Store. Nothing to do.
func (s *Store) Initialize(ctx context.Context) error {
	return nil
}

// Load implements core.Store.
func (s *Store) Load(ctx context.Context) ([]core.Note, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return nil, false, nil
	}
	out := make([]core.Note, len(s.notes))
	copy(out, s.notes)
	return out, true, nil
}

// Save implements core.Store.
func (s *Store) Save(ctx context.Context, notes []core.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = make([]core.Note, len(notes))
	copy(s.notes, notes)
	s.present = true
	return nil
}

// Clear implements core.Store. The record becomes absent, not empty.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = nil
	s.present = false
	return nil
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory"
}

var _ core.Store = (*Store)(nil)
