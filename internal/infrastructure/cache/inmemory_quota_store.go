package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryQuotaStore implements QuotaStore with a process-local map.
// Used when Redis is disabled; quota state is lost on restart and not
// shared between instances.
type InMemoryQuotaStore struct {
	mu     sync.Mutex
	counts map[string]int
	day    string
	now    func() time.Time
}

// NewInMemoryQuotaStore creates an in-memory quota store
func NewInMemoryQuotaStore() *InMemoryQuotaStore {
	return &InMemoryQuotaStore{
		counts: make(map[string]int),
		now:    time.Now,
	}
}

// rollover drops all counters when the UTC day changes
func (s *InMemoryQuotaStore) rollover(now time.Time) {
	day := now.UTC().Format("2006-01-02")
	if day != s.day {
		s.counts = make(map[string]int)
		s.day = day
	}
}

// Take consumes one unit of the user's daily quota
func (s *InMemoryQuotaStore) Take(_ context.Context, userID string, limit int) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollover(s.now())

	count := s.counts[userID]
	if count >= limit {
		return count, false, nil
	}

	count++
	s.counts[userID] = count
	return count, true, nil
}

// Used returns the number of units consumed today
func (s *InMemoryQuotaStore) Used(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollover(s.now())
	return s.counts[userID], nil
}

// Close is a no-op for the in-memory store
func (s *InMemoryQuotaStore) Close() error {
	return nil
}
