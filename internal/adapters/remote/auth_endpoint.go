package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
)

// SessionHeader carries the session id on calls that name a session explicitly.
const SessionHeader = "X-Session-ID"

// FieldPaths are JMESPath expressions locating the session fields in the
// authentication response body.
type FieldPaths struct {
	SessionID string
	UserID    string
	Role      string
}

// DefaultFieldPaths matches a flat {"id","userid","role"} response.
func DefaultFieldPaths() FieldPaths {
	return FieldPaths{SessionID: "id", UserID: "userid", Role: "role"}
}

// Validate compiles every expression.
func (p FieldPaths) Validate() error {
	var errs []error
	for name, expr := range map[string]string{"session id": p.SessionID, "user id": p.UserID, "role": p.Role} {
		if strings.TrimSpace(expr) == "" {
			errs = append(errs, fmt.Errorf("%s path is empty", name))
			continue
		}
		if _, err := jmespath.Compile(expr); err != nil {
			errs = append(errs, fmt.Errorf("%s path %q: %w", name, expr, err))
		}
	}
	return errors.Join(errs...)
}

// AuthEndpoint talks to the server's authentication resource.
type AuthEndpoint struct {
	client *Client
	paths  FieldPaths
}

// NewAuthEndpoint binds the auth resource to client. Invalid paths are rejected here
// rather than at the first login.
func NewAuthEndpoint(client *Client, paths FieldPaths) (*AuthEndpoint, error) {
	if client == nil {
		return nil, errors.New("auth endpoint: client is required")
	}
	if err := paths.Validate(); err != nil {
		return nil, fmt.Errorf("auth endpoint: %w", err)
	}
	return &AuthEndpoint{client: client, paths: paths}, nil
}

// Authenticate posts creds to /auth and reads the issued session from the response.
// A rejected login surfaces as the classified *domainauth.RemoteFailure.
func (a *AuthEndpoint) Authenticate(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error) {
	var body any
	if err := a.client.Do(ctx, Request{Method: http.MethodPost, Path: "/auth", Body: creds}, &body); err != nil {
		return domainauth.Session{}, err
	}

	id, err := a.field(a.paths.SessionID, body)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("session id: %w", err)
	}
	userID, err := a.field(a.paths.UserID, body)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("user id: %w", err)
	}
	rawRole, err := a.field(a.paths.Role, body)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("role: %w", err)
	}
	role, err := domainauth.ParseRole(rawRole)
	if err != nil {
		return domainauth.Session{}, err
	}
	return domainauth.Session{ID: id, UserID: userID, Role: role}, nil
}

// Revoke ends the named session on the server.
func (a *AuthEndpoint) Revoke(ctx context.Context, sessionID string) error {
	return a.client.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   "/auth",
		Header: http.Header{SessionHeader: []string{sessionID}},
	}, nil)
}

func (a *AuthEndpoint) field(expr string, data any) (string, error) {
	v, err := jmespath.Search(expr, data)
	if err != nil {
		return "", fmt.Errorf("evaluate %q: %w", expr, err)
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case nil:
		return "", fmt.Errorf("%q not present in response", expr)
	default:
		return "", fmt.Errorf("%q has unsupported type %T", expr, v)
	}
}
