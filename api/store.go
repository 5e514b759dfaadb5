package api

import (
	"sync"

	"weather-dashboard/scheduler"
)

// Store holds the latest published snapshot. It is a scheduler.Presenter, so
// the loop hands over each snapshot and HTTP handlers only ever read copies.
type Store struct {
	snapshot scheduler.Snapshot
	set      bool
	mutex    sync.RWMutex
}

// NewStore creates a new in-memory snapshot store
func NewStore() *Store {
	return &Store{}
}

// Render replaces the stored snapshot
func (s *Store) Render(snapshot scheduler.Snapshot) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.snapshot = snapshot
	s.set = true
}

// Snapshot returns the latest snapshot and whether one was published yet
func (s *Store) Snapshot() (scheduler.Snapshot, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.snapshot, s.set
}

var _ scheduler.Presenter = (*Store)(nil)
