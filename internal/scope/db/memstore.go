package db

import (
	"context"
	"slices"
	"sync"

	"github.com/dsjohal14/arcadeboard/internal/scope/scores"
)

// MemStore keeps entries in process memory. Used for memory:// and in tests.
type MemStore struct {
	mu      sync.RWMutex
	entries []scores.Entry
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{
		entries: make([]scores.Entry, 0),
	}
}

// Insert appends an entry
func (s *MemStore) Insert(_ context.Context, entry scores.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	return nil
}

// Top returns up to limit entries in leaderboard order
func (s *MemStore) Top(_ context.Context, limit int) ([]scores.Entry, error) {
	s.mu.RLock()
	ranked := slices.Clone(s.entries)
	s.mu.RUnlock()

	slices.SortFunc(ranked, scores.Compare)

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Count returns the number of stored entries
func (s *MemStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Kind returns "memory"
func (s *MemStore) Kind() string { return "memory" }

// Close is a no-op
func (s *MemStore) Close() error { return nil }
