package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	apperrors "github.com/target/mmk-ui-gate/internal/errors"
)

// View is a navigable screen and the roles allowed to enter it.
type View struct {
	Name        string
	Path        string
	Title       string
	Requirement domainauth.NavigationRequirement
}

// ViewRegistry holds the declared views. Registration is where misdeclared
// views are refused; nothing is defaulted at decision time.
type ViewRegistry struct {
	mu     sync.RWMutex
	byName map[string]View
	byPath map[string]string
	order  []string
}

// NewViewRegistry creates an empty registry.
func NewViewRegistry() *ViewRegistry {
	return &ViewRegistry{
		byName: make(map[string]View),
		byPath: make(map[string]string),
	}
}

// Register adds v. Every failure is a configuration error.
func (r *ViewRegistry) Register(v View) error {
	v.Name = strings.TrimSpace(v.Name)
	v.Path = strings.TrimSpace(v.Path)
	if err := validateView(v); err != nil {
		return err
	}
	if v.Title == "" {
		v.Title = v.Name
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byName[v.Name]; dup {
		return apperrors.Configurationf("view %q declared twice", v.Name)
	}
	if other, dup := r.byPath[v.Path]; dup {
		return apperrors.Configurationf("view %q reuses path %q of view %q", v.Name, v.Path, other)
	}
	r.byName[v.Name] = v
	r.byPath[v.Path] = v.Name
	r.order = append(r.order, v.Name)
	return nil
}

func validateView(v View) error {
	if v.Name == "" {
		return apperrors.Configurationf("view name is required")
	}
	if !strings.HasPrefix(v.Path, "/") {
		return apperrors.Configurationf("view %q path %q must start with /", v.Name, v.Path)
	}
	if v.Requirement.AuthorizedRoles == nil {
		return apperrors.Wrapf(domainauth.ErrMissingRequirement, apperrors.ErrCodeConfiguration, "view %q", v.Name)
	}
	if err := v.Requirement.Validate(); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeConfiguration, "view %q", v.Name)
	}
	return nil
}

// RegisterAll registers views in order and reports every failure.
func (r *ViewRegistry) RegisterAll(views ...View) error {
	var errs []error
	for _, v := range views {
		if err := r.Register(v); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("register views: %w", errors.Join(errs...))
	}
	return nil
}

// Lookup returns the view with the given name.
func (r *ViewRegistry) Lookup(name string) (View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byName[name]
	return v, ok
}

// ByPath returns the view served at path.
func (r *ViewRegistry) ByPath(path string) (View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.byPath[path]
	if !ok {
		return View{}, false
	}
	return r.byName[name], true
}

// Views returns the registered views in registration order.
func (r *ViewRegistry) Views() []View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]View, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// NewNavigation builds the attempt to enter v from the view at path from.
func NewNavigation(from string, v View) *domainauth.Navigation {
	return &domainauth.Navigation{
		From:        from,
		To:          v.Name,
		Path:        v.Path,
		Requirement: v.Requirement,
	}
}
