package auth

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNoAuthorizedRoles is returned when a requirement declares no roles.
	ErrNoAuthorizedRoles = errors.New("navigation requirement must authorize at least one role")
	// ErrMissingRequirement is returned when a view is declared without a requirement.
	ErrMissingRequirement = errors.New("view has no navigation requirement")
)

// NavigationRequirement lists the roles allowed to enter a view.
// Build it with NewNavigationRequirement so empty and unknown entries are rejected up front.
type NavigationRequirement struct {
	AuthorizedRoles []Role
}

// NewNavigationRequirement validates roles and returns a requirement holding a copy of them.
// A caller holding a single role passes it as a one-element list.
func NewNavigationRequirement(roles ...Role) (NavigationRequirement, error) {
	req := NavigationRequirement{AuthorizedRoles: slices.Clone(roles)}
	if err := req.Validate(); err != nil {
		return NavigationRequirement{}, err
	}
	return req, nil
}

// MustNavigationRequirement is like NewNavigationRequirement but panics on invalid input.
// Intended for package-level declarations.
func MustNavigationRequirement(roles ...Role) NavigationRequirement {
	req, err := NewNavigationRequirement(roles...)
	if err != nil {
		panic(err)
	}
	return req
}

// Validate checks the requirement is usable for decisions.
func (r NavigationRequirement) Validate() error {
	if len(r.AuthorizedRoles) == 0 {
		return ErrNoAuthorizedRoles
	}
	for _, role := range r.AuthorizedRoles {
		if !role.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownRole, string(role))
		}
	}
	return nil
}

// IsPublic reports whether the requirement contains the wildcard role.
func (r NavigationRequirement) IsPublic() bool {
	return slices.Contains(r.AuthorizedRoles, RoleAll)
}

// Allows reports whether role is listed. The wildcard is not expanded here.
func (r NavigationRequirement) Allows(role Role) bool {
	return slices.Contains(r.AuthorizedRoles, role)
}

// IsAuthorized decides whether session may enter a view guarded by req.
//
// A wildcard requirement admits every session, including the guest one.
// Otherwise the session must be authenticated and its role must be listed;
// roles carry no hierarchy.
func IsAuthorized(req NavigationRequirement, session Session) bool {
	if req.IsPublic() {
		return true
	}
	return session.IsAuthenticated() && req.Allows(session.Role)
}
