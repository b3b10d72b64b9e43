package config

import (
	"errors"
	"strings"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	apperrors "github.com/target/mmk-ui-gate/internal/errors"
)

// DefaultViews is the stock declaration: an editor/admin dashboard and a public login view.
const DefaultViews = "dashboard|/dashboard|admin,editor|Dashboard;login|/login|*|Sign in"

// GateConfig declares the views the guard protects.
type GateConfig struct {
	HomeView  string    `env:"GATE_HOME_VIEW"  envDefault:"dashboard"`
	LoginView string    `env:"GATE_LOGIN_VIEW" envDefault:"login"`
	Views     ViewSpecs `env:"GATE_VIEWS"      envDefault:"dashboard|/dashboard|admin,editor|Dashboard;login|/login|*|Sign in"`
}

// Sanitize trims view names.
func (g *GateConfig) Sanitize() {
	g.HomeView = strings.TrimSpace(g.HomeView)
	g.LoginView = strings.TrimSpace(g.LoginView)
}

// ViewSpec is one declared view: name, path, authorized roles and an optional title.
type ViewSpec struct {
	Name        string
	Path        string
	Title       string
	Requirement domainauth.NavigationRequirement
}

// ViewSpecs is a list of views written as
// "name|/path|role,role[|title];name|/path|role[|title]".
type ViewSpecs []ViewSpec

// UnmarshalText implements encoding.TextUnmarshaler for ViewSpecs.
// Any malformed entry, unknown role or empty role list is a configuration error.
func (v *ViewSpecs) UnmarshalText(text []byte) error {
	var (
		specs []ViewSpec
		errs  []error
	)
	for _, entry := range strings.Split(string(text), ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		spec, err := parseViewSpec(entry)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		specs = append(specs, spec)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	if len(specs) == 0 {
		return apperrors.Configurationf("no views declared")
	}
	*v = specs
	return nil
}

func parseViewSpec(entry string) (ViewSpec, error) {
	parts := strings.Split(entry, "|")
	if len(parts) < 3 || len(parts) > 4 {
		return ViewSpec{}, apperrors.Configurationf("view %q: want name|/path|roles[|title]", entry)
	}

	name, path := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if name == "" {
		return ViewSpec{}, apperrors.Configurationf("view %q: name is required", entry)
	}

	roles, err := ParseRoleList(parts[2])
	if err != nil {
		return ViewSpec{}, apperrors.Wrapf(err, apperrors.ErrCodeConfiguration, "view %q", name)
	}
	req, err := domainauth.NewNavigationRequirement(roles...)
	if err != nil {
		return ViewSpec{}, apperrors.Wrapf(err, apperrors.ErrCodeConfiguration, "view %q", name)
	}

	spec := ViewSpec{Name: name, Path: path, Title: name, Requirement: req}
	if len(parts) == 4 && strings.TrimSpace(parts[3]) != "" {
		spec.Title = strings.TrimSpace(parts[3])
	}
	return spec, nil
}

// ParseRoleList parses a comma-separated role list. Blank entries are skipped,
// so an all-blank list yields no roles and is left for the caller to reject.
func ParseRoleList(raw string) ([]domainauth.Role, error) {
	var roles []domainauth.Role
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		role, err := domainauth.ParseRole(part)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// Requirements maps view names to their requirement.
func (v ViewSpecs) Requirements() map[string]domainauth.NavigationRequirement {
	out := make(map[string]domainauth.NavigationRequirement, len(v))
	for _, spec := range v {
		out[spec.Name] = spec.Requirement
	}
	return out
}
