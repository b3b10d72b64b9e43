package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"net/http"
	"sync"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	"github.com/target/mmk-ui-gate/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.AuthEndpoint = (*StubEndpoint)(nil)

// Account is a credential the stub accepts and the session it issues for it.
type Account struct {
	Password string
	Session  domainauth.Session
}

// StubEndpoint simulates the remote authentication endpoint.
// Unknown users and wrong passwords fail with a 401 RemoteFailure, like the real endpoint.
type StubEndpoint struct {
	AuthenticateFunc func(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error)
	RevokeErr        error

	mu       sync.Mutex
	accounts map[string]Account
	revoked  []string
	calls    int
}

// NewStubEndpoint creates a stub with the usual admin, editor and guest-tier accounts.
func NewStubEndpoint() *StubEndpoint {
	return &StubEndpoint{accounts: map[string]Account{
		"ada": {Password: "pw", Session: domainauth.Session{ID: "sess-ada", UserID: "ada", Role: domainauth.RoleAdmin}},
		"eve": {Password: "pw", Session: domainauth.Session{ID: "sess-eve", UserID: "eve", Role: domainauth.RoleEditor}},
		"gus": {Password: "pw", Session: domainauth.Session{ID: "sess-gus", UserID: "gus", Role: domainauth.RoleGuest}},
	}}
}

// AddAccount registers or replaces an account.
func (s *StubEndpoint) AddAccount(username string, acct Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.accounts == nil {
		s.accounts = make(map[string]Account)
	}
	s.accounts[username] = acct
}

func (s *StubEndpoint) Authenticate(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error) {
	s.mu.Lock()
	s.calls++
	acct, ok := s.accounts[creds.Username]
	s.mu.Unlock()

	if s.AuthenticateFunc != nil {
		return s.AuthenticateFunc(ctx, creds)
	}
	if !ok || acct.Password != creds.Password {
		return domainauth.Session{}, &domainauth.RemoteFailure{
			Method:     http.MethodPost,
			URL:        "stub://auth",
			StatusCode: http.StatusUnauthorized,
		}
	}
	return acct.Session, nil
}

func (s *StubEndpoint) Revoke(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked = append(s.revoked, sessionID)
	return s.RevokeErr
}

// Calls returns how many times Authenticate ran.
func (s *StubEndpoint) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Revoked returns the session ids passed to Revoke.
func (s *StubEndpoint) Revoked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.revoked...)
}
