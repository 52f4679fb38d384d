// services/session_store.go
package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yataco/dashboard/backend/models"
	"github.com/yataco/dashboard/backend/utils"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("report session not found")

// Session is one user's upload and filter state. Each session owns its dataset;
// only the store map itself is shared between requests.
type Session struct {
	ID         string
	Format     string
	Dataset    *models.Dataset
	Selection  models.FilterSelection
	LastAccess time.Time
}

// SessionStore keeps sessions in memory and forgets those idle longer than ttl.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create stores a new session for ds and returns it.
func (s *SessionStore) Create(ds *models.Dataset, format string, sel models.FilterSelection) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked() // forget idle sessions before adding a new one
	sess := &Session{
		ID:         uuid.NewString(),
		Format:     format,
		Dataset:    ds,
		Selection:  sel,
		LastAccess: s.now(),
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns a copy of the session so callers cannot race on its fields.
func (s *SessionStore) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.expiredLocked(sess) {
		delete(s.sessions, id) // expired entries are removed lazily here too
		return Session{}, ErrSessionNotFound
	}
	sess.LastAccess = s.now()
	return *sess, nil
}

// UpdateSelection replaces the filter selection of a session.
func (s *SessionStore) UpdateSelection(id string, sel models.FilterSelection) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.expiredLocked(sess) {
		delete(s.sessions, id)
		return Session{}, ErrSessionNotFound
	}
	sess.Selection = sel
	sess.LastAccess = s.now()
	return *sess, nil
}

// Delete drops a session. Deleting an unknown id is an error.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len is the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) expiredLocked(sess *Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.LastAccess) > s.ttl // ttl 0 keeps sessions forever
}

func (s *SessionStore) sweepLocked() {
	for id, sess := range s.sessions {
		if s.expiredLocked(sess) {
			delete(s.sessions, id)
			utils.Log.Debugf("Service: expired report session %s", id)
		}
	}
}
