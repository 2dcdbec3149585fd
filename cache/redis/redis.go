// Package redis provides a Redis-backed line cache, letting several
// processes share reconstructed documents.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tsawler/patgrep/cache"
	"github.com/tsawler/patgrep/layout"
)

// Verify interface compliance
var _ cache.Store = (*Store)(nil)

const keyPrefix = "patgrep:lines:"

// DefaultTTL is how long cached reconstructions live. Reconstruction is
// deterministic, so the TTL only bounds memory, not staleness.
const DefaultTTL = 24 * time.Hour

// Store caches reconstructed lines in Redis as JSON.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a Redis-backed store with the default TTL.
func NewStore(client *redis.Client) *Store {
	return NewStoreWithTTL(client, DefaultTTL)
}

// NewStoreWithTTL creates a Redis-backed store with a custom TTL.
// A zero ttl caches entries without expiry.
func NewStoreWithTTL(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached lines for a document.
func (s *Store) Get(ctx context.Context, documentID string) ([]layout.AnchoredLine, bool, error) {
	data, err := s.client.Get(ctx, keyPrefix+documentID).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached lines for %s: %w", documentID, err)
	}

	var lines []layout.AnchoredLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, false, fmt.Errorf("decode cached lines for %s: %w", documentID, err)
	}
	return lines, true, nil
}

// Set caches the lines for a document.
func (s *Store) Set(ctx context.Context, documentID string, lines []layout.AnchoredLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode lines for %s: %w", documentID, err)
	}

	if err := s.client.Set(ctx, keyPrefix+documentID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache lines for %s: %w", documentID, err)
	}
	return nil
}

// Delete evicts a document's cached lines.
func (s *Store) Delete(ctx context.Context, documentID string) error {
	if err := s.client.Del(ctx, keyPrefix+documentID).Err(); err != nil {
		return fmt.Errorf("evict cached lines for %s: %w", documentID, err)
	}
	return nil
}
