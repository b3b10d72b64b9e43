package auth

// Package auth contains domain-level types for authentication, sessions, and
// view authorization. It is pure and free of framework/adapter concerns.

import (
	"errors"
	"fmt"
	"strings"
)

// Role represents an actor's privilege tier.
// Keep string form for easy wire transport and config.
// Valid values are defined as constants below; the set is closed.
type Role string

const (
	// RoleAll is the wildcard: a requirement containing it authorizes everyone.
	RoleAll    Role = "*"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleGuest  Role = "guest"
)

// ErrUnknownRole is returned when a value is outside the closed role set.
var ErrUnknownRole = errors.New("unknown role")

// Roles returns the closed role vocabulary in declaration order.
func Roles() []Role {
	return []Role{RoleAll, RoleAdmin, RoleEditor, RoleGuest}
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAll, RoleAdmin, RoleEditor, RoleGuest:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

// ParseRole converts a raw value into a Role, rejecting anything outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so roles can be parsed from env.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Session is the current actor's identity.
// The zero value has no role; use GuestSession for the anonymous state.
type Session struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id,omitempty"`
	Role   Role   `json:"role"`
}

// GuestSession returns the fully cleared session: no id, no user, guest role.
func GuestSession() Session {
	return Session{Role: RoleGuest}
}

// IsAuthenticated reports whether a user id is present.
// A session may be authenticated and still hold the guest role.
func (s Session) IsAuthenticated() bool { return s.UserID != "" }

// Credentials are what the login flow submits to the remote endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"` //nolint:gosec // field name, not a secret
}
