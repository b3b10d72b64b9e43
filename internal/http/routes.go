package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	apperrors "github.com/target/mmk-ui-gate/internal/errors"
	"github.com/target/mmk-ui-gate/internal/ports"
	"github.com/target/mmk-ui-gate/internal/service"
)

// Navigator runs the navigation guard for one attempt.
type Navigator interface {
	Evaluate(ctx context.Context, nav *domainauth.Navigation) service.Decision
}

// Authenticator runs the login and logout flows.
type Authenticator interface {
	Login(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error)
	Logout(ctx context.Context) error
}

// ViewFetcher loads the remote content of a view.
type ViewFetcher interface {
	Fetch(ctx context.Context, name string) (map[string]any, error)
}

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Guard    Navigator             // Required
	Auth     Authenticator         // Required
	Sessions ports.SessionReader   // Required
	Views    *service.ViewRegistry // Required
	// Optional: views render without remote content when nil.
	ViewData ViewFetcher
	// Names of the views used after login and for the unknown-URL fallback.
	HomeView  string
	LoginView string
	Logger    *slog.Logger
}

// Default view names when RouterServices leaves them empty.
const (
	DefaultHomeView  = "dashboard"
	DefaultLoginView = "login"
)

// NewRouter validates services and returns the UI handler with logging and recovery applied.
func NewRouter(services RouterServices) (http.Handler, error) {
	h, err := newGateHandlers(services)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("GET /session", h.Session)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /views/{name}", h.ViewByName)
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /", h.ViewByPath)

	return Chain(mux, Recover(h.logger), Logging(h.logger)), nil
}

func newGateHandlers(s RouterServices) (*gateHandlers, error) {
	if s.Guard == nil || s.Auth == nil || s.Sessions == nil || s.Views == nil {
		return nil, errors.New("router: guard, auth, sessions and views are required")
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	homeName, loginName := s.HomeView, s.LoginView
	if homeName == "" {
		homeName = DefaultHomeView
	}
	if loginName == "" {
		loginName = DefaultLoginView
	}

	home, ok := s.Views.Lookup(homeName)
	if !ok {
		return nil, apperrors.Configurationf("home view %q is not registered", homeName)
	}
	login, ok := s.Views.Lookup(loginName)
	if !ok {
		return nil, apperrors.Configurationf("login view %q is not registered", loginName)
	}
	if !login.Requirement.IsPublic() {
		return nil, apperrors.Configurationf("login view %q must be open to every role", loginName)
	}

	renderer, err := NewTemplateRenderer(logger)
	if err != nil {
		return nil, err
	}
	return &gateHandlers{
		guard:    s.Guard,
		auth:     s.Auth,
		sessions: s.Sessions,
		views:    s.Views,
		data:     s.ViewData,
		home:     home,
		login:    login,
		render:   renderer,
		logger:   logger,
	}, nil
}
