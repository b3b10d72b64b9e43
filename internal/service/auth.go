package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	apperrors "github.com/target/mmk-ui-gate/internal/errors"
	"github.com/target/mmk-ui-gate/internal/ports"
)

// SessionWriter is the mutable side of the session store used by the login flow.
type SessionWriter interface {
	ports.SessionReader
	Create(sessionID, userID string, role domainauth.Role)
	Destroy()
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Endpoint ports.AuthEndpoint   // Required
	Sessions SessionWriter        // Required
	Events   ports.EventPublisher // Required
}

// AuthService runs the login and logout flows against the remote endpoint
// and keeps the local session in step with it.
type AuthService struct {
	endpoint ports.AuthEndpoint
	sessions SessionWriter
	events   ports.EventPublisher
}

var errInvalidIssuedSession = errors.New("endpoint issued an unusable session")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Endpoint == nil {
		panic("AuthEndpoint is required")
	}
	if opts.Sessions == nil {
		panic("SessionWriter is required")
	}
	if opts.Events == nil {
		panic("EventPublisher is required")
	}
	return &AuthService{
		endpoint: opts.Endpoint,
		sessions: opts.Sessions,
		events:   opts.Events,
	}
}

// Login authenticates creds with the remote endpoint. On success the local
// session is replaced exactly once and loginSuccess is published carrying the
// issued session; on any failure loginFailed is published and the error
// returned. A 4xx answer from the endpoint comes back as an unauthenticated
// AppError.
func (s *AuthService) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error) {
	issued, err := s.authenticate(ctx, creds)
	if err != nil {
		s.events.Publish(ctx, domainauth.Event{Kind: domainauth.EventLoginFailed, Err: err})
		return domainauth.Session{}, err
	}

	s.sessions.Create(issued.ID, issued.UserID, issued.Role)
	s.events.Publish(ctx, domainauth.Event{Kind: domainauth.EventLoginSuccess, Session: &issued})
	return issued, nil
}

func (s *AuthService) authenticate(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error) {
	if strings.TrimSpace(creds.Username) == "" {
		return domainauth.Session{}, apperrors.ValidationField("username", "username is required")
	}
	if creds.Password == "" {
		return domainauth.Session{}, apperrors.ValidationField("password", "password is required")
	}

	issued, err := s.endpoint.Authenticate(ctx, creds)
	var failure *domainauth.RemoteFailure
	switch {
	case err == nil:
	case errors.As(err, &failure) && failure.StatusCode < http.StatusInternalServerError:
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthenticated, "credentials rejected")
	default:
		return domainauth.Session{}, fmt.Errorf("authenticate: %w", err)
	}
	if err := validateIssued(issued); err != nil {
		return domainauth.Session{}, fmt.Errorf("authenticate: %w", err)
	}
	return issued, nil
}

// validateIssued refuses sessions that would break the populated-or-cleared invariant.
// An actor can never hold the wildcard role.
func validateIssued(sess domainauth.Session) error {
	switch {
	case sess.ID == "":
		return fmt.Errorf("%w: missing session id", errInvalidIssuedSession)
	case sess.UserID == "":
		return fmt.Errorf("%w: missing user id", errInvalidIssuedSession)
	case !sess.Role.Valid() || sess.Role == domainauth.RoleAll:
		return fmt.Errorf("%w: %w: %q", errInvalidIssuedSession, domainauth.ErrUnknownRole, string(sess.Role))
	default:
		return nil
	}
}

// Logout clears the local session and publishes logoutSuccess. The remote
// session is revoked first on a best-effort basis; a revoke error is returned
// after the local session has already been cleared.
func (s *AuthService) Logout(ctx context.Context) error {
	current := s.sessions.Snapshot()

	var revokeErr error
	if current.ID != "" {
		if err := s.endpoint.Revoke(ctx, current.ID); err != nil {
			revokeErr = fmt.Errorf("revoke session: %w", err)
		}
	}

	s.sessions.Destroy()
	s.events.Publish(ctx, domainauth.Event{Kind: domainauth.EventLogoutSuccess})
	return revokeErr
}

// ExpireSession resets the local session when the server reports a timeout.
func (s *AuthService) ExpireSession(_ context.Context, evt domainauth.Event) {
	if evt.Kind != domainauth.EventSessionTimeout {
		return
	}
	s.sessions.Destroy()
}

// Attach subscribes the service to the events it reacts to.
func (s *AuthService) Attach(sub ports.EventSubscriber) (detach func()) {
	return sub.Subscribe(s.ExpireSession, domainauth.EventSessionTimeout)
}
