package planner

import (
	"context"
	"log"
)

// Backend abstracts the road-condition backend's route search operation.
type Backend interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
}

// Store is the contract the in-memory session store (and any future
// persistent store) must satisfy.
type Store interface {
	Create() *Session
	Get(id string) (*Session, error)
	Delete(id string)
}

// Service coordinates planner sessions with the route-search backend.
type Service struct {
	store   Store
	backend Backend
}

// NewService creates a new Service.
func NewService(store Store, backend Backend) *Service {
	return &Service{store: store, backend: backend}
}

// CreateSession opens a fresh planner page session.
func (s *Service) CreateSession() *Session {
	return s.store.Create()
}

// View returns the current display model for a session.
func (s *Service) View(sessionID string) (*ViewModel, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.View(), nil
}

// Search runs one route search for a session. The session is cleared up
// front, so a failed search leaves an empty result with no selection. If a
// newer search started while this one was in flight, the late response is
// dropped and the session's current state is returned untouched.
func (s *Service) Search(ctx context.Context, sessionID string, req SearchRequest) (*ViewModel, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	gen := sess.BeginSearch()
	result, err := s.backend.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	if !sess.CompleteSearch(gen, result) {
		log.Printf("planner: dropping superseded search response for session %s", sessionID)
	}
	return sess.View(), nil
}

// SelectRoute changes the active route for a session. Unknown route ids are
// ignored; no network call is made either way.
func (s *Service) SelectRoute(sessionID, routeID string) (*ViewModel, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.SelectRoute(routeID)
	return sess.View(), nil
}

// ClearResults empties a session's results and selection.
func (s *Service) ClearResults(sessionID string) (*ViewModel, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.ClearResults()
	return sess.View(), nil
}

// CloseSession removes a session entirely.
func (s *Service) CloseSession(sessionID string) {
	s.store.Delete(sessionID)
}
