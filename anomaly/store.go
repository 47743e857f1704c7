package anomaly

import (
	"sync"
	"time"
)

// Store holds the latest fetched dataset. Each fetch attempt takes a
// generation token from Begin and commits with it; only the most recently
// issued token may commit, so a stale in-flight response can never overwrite
// a newer one.
type Store struct {
	mu        sync.RWMutex
	latestGen uint64
	records   []Record
	degraded  bool
	fetchedAt time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Begin issues a new generation token for a fetch attempt.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latestGen++
	return s.latestGen
}

// Commit replaces the dataset if gen is still the latest issued token.
// Returns false when the result was stale and discarded.
func (s *Store) Commit(gen uint64, records []Record, degraded bool, fetchedAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.latestGen {
		return false
	}
	s.records = records
	s.degraded = degraded
	s.fetchedAt = fetchedAt
	return true
}

// Snapshot returns the current dataset. The slice is shared and must be
// treated as immutable; every engine operation derives new views from it.
func (s *Store) Snapshot() (records []Record, degraded bool, fetchedAt time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records, s.degraded, s.fetchedAt
}
