// Package cache caches reconstructed document lines between searches.
//
// Reconstructing a document's layout is deterministic but not free, and
// callers typically issue several queries against the same document. A
// [Loader] wraps a [Store] with a build function and guarantees that at most
// one reconstruction runs per document identifier at a time: concurrent
// callers for the same identifier wait for the first reconstruction and
// share its result, while callers for different identifiers never block one
// another.
package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tsawler/patgrep/layout"
)

// Store persists reconstructed lines keyed by document identifier.
type Store interface {
	// Get returns the cached lines for a document, with found=false when
	// the document has not been cached.
	Get(ctx context.Context, documentID string) (lines []layout.AnchoredLine, found bool, err error)

	// Set caches the lines for a document, replacing any previous entry.
	Set(ctx context.Context, documentID string, lines []layout.AnchoredLine) error
}

// BuildFunc reconstructs a document's lines on a cache miss.
type BuildFunc func(ctx context.Context, documentID string) ([]layout.AnchoredLine, error)

// call tracks one in-flight reconstruction
type call struct {
	done  chan struct{}
	lines []layout.AnchoredLine
	err   error
}

// Loader serves reconstructed lines from a Store, running the build function
// at most once per document identifier at a time.
type Loader struct {
	store  Store
	build  BuildFunc
	logger *slog.Logger

	mu       sync.Mutex
	inflight map[string]*call
}

// LoaderConfig holds configuration for a Loader.
type LoaderConfig struct {
	Store  Store
	Build  BuildFunc
	Logger *slog.Logger
}

// NewLoader creates a loader over the given store and build function.
func NewLoader(cfg LoaderConfig) *Loader {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		store:    cfg.Store,
		build:    cfg.Build,
		logger:   logger,
		inflight: make(map[string]*call),
	}
}

// Load returns the reconstructed lines for a document, building and caching
// them on a miss. Build errors are not cached: a later call retries.
func (l *Loader) Load(ctx context.Context, documentID string) ([]layout.AnchoredLine, error) {
	lines, found, err := l.store.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if found {
		l.logger.Debug("cache hit", "document", documentID, "lines", len(lines))
		return lines, nil
	}

	l.mu.Lock()
	if c, ok := l.inflight[documentID]; ok {
		l.mu.Unlock()
		select {
		case <-c.done:
			return c.lines, c.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c := &call{done: make(chan struct{})}
	l.inflight[documentID] = c
	l.mu.Unlock()

	c.lines, c.err = l.reconstruct(ctx, documentID)

	l.mu.Lock()
	delete(l.inflight, documentID)
	l.mu.Unlock()
	close(c.done)

	return c.lines, c.err
}

// reconstruct runs the build function and stores its result.
func (l *Loader) reconstruct(ctx context.Context, documentID string) ([]layout.AnchoredLine, error) {
	l.logger.Debug("cache miss, reconstructing", "document", documentID)

	lines, err := l.build(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if err := l.store.Set(ctx, documentID, lines); err != nil {
		// Serving the result matters more than caching it
		l.logger.Warn("failed to cache reconstructed lines", "document", documentID, "error", err)
	}

	return lines, nil
}
