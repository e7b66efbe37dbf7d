package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shinuoyan888/HuXuYan/internal/planner"
)

var (
	// ErrNotFound is returned when no session exists for a given id.
	ErrNotFound = errors.New("no planner session for id")
)

// MemoryStore is a concurrency-safe in-memory store of planner sessions.
// Sessions are page-scoped and disposable: nothing in them survives a sweep
// or a restart.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session id
	sessions map[string]*planner.Session

	// maxAge is how long an idle session is kept. <= 0 means unlimited.
	maxAge time.Duration
}

// NewMemoryStore creates a new MemoryStore with the given idle retention.
func NewMemoryStore(maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*planner.Session),
		maxAge:   maxAge,
	}
}

// Create opens a new session under a fresh uuid.
func (s *MemoryStore) Create() *planner.Session {
	sess := planner.NewSession(uuid.NewString())

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	return sess
}

// Get returns the session for id and refreshes its idle timer.
func (s *MemoryStore) Get(id string) (*planner.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	sess.Touch()
	return sess, nil
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle beyond the retention window and returns how
// many were dropped.
func (s *MemoryStore) Sweep() int {
	if s.maxAge <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-s.maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.IdleSince().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
