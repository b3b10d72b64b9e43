package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/target/mmk-ui-gate/config"
	"github.com/target/mmk-ui-gate/internal/adapters/remote"
	"github.com/target/mmk-ui-gate/internal/events"
	httpx "github.com/target/mmk-ui-gate/internal/http"
	"github.com/target/mmk-ui-gate/internal/observability/statsd"
	"github.com/target/mmk-ui-gate/internal/service"
)

// GateOptions contains what BuildGate needs.
type GateOptions struct {
	Config  *config.AppConfig // Required
	Logger  *slog.Logger
	Metrics statsd.Sink
	// HTTPClient overrides the client used for remote calls. Tests point it at httptest servers.
	HTTPClient *http.Client
}

// Gate is the wired local UI: one session store, one event bus, and the
// guard, classifier and auth flows sharing them.
type Gate struct {
	Handler  http.Handler
	Bus      *events.Bus
	Sessions *service.SessionStore
	Guard    *service.NavigationGuard
	Auth     *service.AuthService
	Views    *service.ViewRegistry
	Remote   *remote.Client

	detach []func()
}

// Close unsubscribes every observer attached by BuildGate.
func (g *Gate) Close() {
	for i := len(g.detach) - 1; i >= 0; i-- {
		g.detach[i]()
	}
	g.detach = nil
}

// BuildGate is the composition root of the gate. The session starts as guest
// before any navigation is evaluated. Any misdeclared view, unusable remote
// setting or missing home/login view is returned as a configuration error.
func BuildGate(opts GateOptions) (*Gate, error) {
	if opts.Config == nil {
		return nil, errors.New("gate: config is required")
	}
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	obs := service.Observability{Logger: logger, Metrics: opts.Metrics}

	busOpts := []events.Option{events.WithLogger(logger)}
	if opts.Metrics != nil {
		busOpts = append(busOpts, events.WithMetrics(opts.Metrics))
	}
	bus := events.NewBus(busOpts...)
	sessions := service.NewSessionStore()
	classifier := service.NewResponseClassifier(service.ResponseClassifierOptions{
		Events:        bus,
		Observability: obs,
	})

	client, err := remote.NewClient(remote.ClientOptions{
		BaseURL:    cfg.Remote.BaseURL,
		Classifier: classifier,
		Timeout:    cfg.Remote.Timeout,
		HTTPClient: opts.HTTPClient,
		Logger:     logger,
		Metrics:    opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("gate: remote client: %w", err)
	}
	endpoint, err := remote.NewAuthEndpoint(client, remote.FieldPaths{
		SessionID: cfg.Remote.SessionIDPath,
		UserID:    cfg.Remote.UserIDPath,
		Role:      cfg.Remote.RolePath,
	})
	if err != nil {
		return nil, fmt.Errorf("gate: auth endpoint: %w", err)
	}

	views := service.NewViewRegistry()
	if regErr := views.RegisterAll(toViews(cfg.Gate.Views)...); regErr != nil {
		return nil, fmt.Errorf("gate: views: %w", regErr)
	}

	guard := service.NewNavigationGuard(service.NavigationGuardOptions{
		Sessions:      sessions,
		Events:        bus,
		Observability: obs,
	})
	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Endpoint: endpoint,
		Sessions: sessions,
		Events:   bus,
	})

	gate := &Gate{
		Bus:      bus,
		Sessions: sessions,
		Guard:    guard,
		Auth:     authSvc,
		Views:    views,
		Remote:   client,
	}
	gate.detach = append(gate.detach, authSvc.Attach(bus))

	handler, err := httpx.NewRouter(httpx.RouterServices{
		Guard:     guard,
		Auth:      authSvc,
		Sessions:  sessions,
		Views:     views,
		ViewData:  remote.NewViewData(client),
		HomeView:  cfg.Gate.HomeView,
		LoginView: cfg.Gate.LoginView,
		Logger:    logger,
	})
	if err != nil {
		gate.Close()
		return nil, fmt.Errorf("gate: router: %w", err)
	}
	gate.Handler = handler

	// The router has already checked that the login view exists.
	login, _ := views.Lookup(loginViewName(cfg.Gate))
	gate.detach = append(gate.detach, httpx.NewLoginRedirector(login.Path).Attach(bus))

	logger.Info("gate wired",
		"remote", client.BaseURL(),
		"views", len(views.Views()),
		"login", login.Path,
	)
	return gate, nil
}

func toViews(specs config.ViewSpecs) []service.View {
	out := make([]service.View, 0, len(specs))
	for _, s := range specs {
		out = append(out, service.View{
			Name:        s.Name,
			Path:        s.Path,
			Title:       s.Title,
			Requirement: s.Requirement,
		})
	}
	return out
}

func loginViewName(g config.GateConfig) string {
	if g.LoginView != "" {
		return g.LoginView
	}
	return httpx.DefaultLoginView
}
