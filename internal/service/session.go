package service

import (
	"sync"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
)

// SessionStore is the single source of truth for who is currently acting.
// Every mutation replaces the whole session in one step, so readers observe
// either the fully populated or the fully cleared state.
type SessionStore struct {
	mu      sync.RWMutex
	current domainauth.Session
}

// NewSessionStore returns a store holding the guest session.
func NewSessionStore() *SessionStore {
	return &SessionStore{current: domainauth.GuestSession()}
}

// Create replaces the session. The role is trusted; callers supply a value from the closed set.
func (s *SessionStore) Create(sessionID, userID string, role domainauth.Role) {
	next := domainauth.Session{ID: sessionID, UserID: userID, Role: role}
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
}

// Destroy clears the session back to guest. Calling it again has no further effect.
func (s *SessionStore) Destroy() {
	s.mu.Lock()
	s.current = domainauth.GuestSession()
	s.mu.Unlock()
}

// IsAuthenticated reports whether a user id is present.
func (s *SessionStore) IsAuthenticated() bool {
	return s.Snapshot().IsAuthenticated()
}

// CurrentRole returns the held role, guest when nobody logged in.
func (s *SessionStore) CurrentRole() domainauth.Role {
	return s.Snapshot().Role
}

// Snapshot returns a copy of the settled session.
func (s *SessionStore) Snapshot() domainauth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
