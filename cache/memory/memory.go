// Package memory provides an in-process line cache.
package memory

import (
	"context"
	"sync"

	"github.com/tsawler/patgrep/cache"
	"github.com/tsawler/patgrep/layout"
)

// Verify interface compliance
var _ cache.Store = (*Store)(nil)

// Store caches reconstructed lines in process memory. Entries are copied on
// the way in and out, so callers may not mutate each other's slices.
type Store struct {
	mu    sync.RWMutex
	lines map[string][]layout.AnchoredLine
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		lines: make(map[string][]layout.AnchoredLine),
	}
}

// Get returns the cached lines for a document.
func (s *Store) Get(_ context.Context, documentID string) ([]layout.AnchoredLine, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines, ok := s.lines[documentID]
	if !ok {
		return nil, false, nil
	}
	return copyLines(lines), true, nil
}

// Set caches the lines for a document.
func (s *Store) Set(_ context.Context, documentID string, lines []layout.AnchoredLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines[documentID] = copyLines(lines)
	return nil
}

// Delete evicts a document's cached lines.
func (s *Store) Delete(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.lines, documentID)
	return nil
}

// Len returns the number of cached documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.lines)
}

// copyLines clones a line slice
func copyLines(lines []layout.AnchoredLine) []layout.AnchoredLine {
	out := make([]layout.AnchoredLine, len(lines))
	copy(out, lines)
	return out
}
