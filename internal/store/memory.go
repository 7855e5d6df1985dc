// Package store holds dialogue session repositories.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/i474232898/weather-bot/internal/dialogue"
)

type entry struct {
	session dialogue.Session
	touched time.Time
}

// MemoryStore is a concurrency-safe in-memory session repository. Sessions do
// not survive a restart.
type MemoryStore struct {
	mu sync.RWMutex

	// key: user id
	data map[int64]entry

	now func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[int64]entry),
		now:  time.Now,
	}
}

// Get returns the user's session, or the zero (idle) session when none exists.
func (s *MemoryStore) Get(_ context.Context, userID int64) (dialogue.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[userID]
	if !ok {
		return dialogue.Session{}, nil
	}
	return e.session, nil
}

// Set replaces the user's session.
func (s *MemoryStore) Set(_ context.Context, userID int64, session dialogue.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[userID] = entry{session: session, touched: s.now()}
	return nil
}

// Clear drops the user's session.
func (s *MemoryStore) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, userID)
	return nil
}

// Sweep drops sessions not touched within maxAge and returns how many were
// removed.
func (s *MemoryStore) Sweep(maxAge time.Duration) int {
	cutoff := s.now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.data {
		if e.touched.Before(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
