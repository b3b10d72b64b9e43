package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	"github.com/target/mmk-ui-gate/internal/observability/metrics"
	"github.com/target/mmk-ui-gate/internal/observability/statsd"
	"github.com/target/mmk-ui-gate/internal/ports"
)

// Decision is the guard's verdict for one navigation attempt.
// It deliberately carries no reason; observers learn the reason from the published event.
type Decision int

const (
	// DecisionAllow lets the transition complete unmodified.
	DecisionAllow Decision = iota
	// DecisionCancel stops the transition; the actor stays on the current view.
	DecisionCancel
)

// Allowed reports whether the navigation may proceed.
func (d Decision) Allowed() bool { return d == DecisionAllow }

func (d Decision) String() string {
	if d == DecisionAllow {
		return "allow"
	}
	return "cancel"
}

// Observability groups optional logging and metrics for a service.
type Observability struct {
	Logger  *slog.Logger
	Metrics statsd.Sink
}

func (o Observability) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// NavigationGuardOptions groups dependencies for NavigationGuard.
type NavigationGuardOptions struct {
	Sessions      ports.SessionReader  // Required
	Events        ports.EventPublisher // Required
	Observability Observability        // Optional
}

// NavigationGuard decides, for every navigation attempt, whether it may complete.
type NavigationGuard struct {
	sessions ports.SessionReader
	events   ports.EventPublisher
	logger   *slog.Logger
	metrics  statsd.Sink
}

// NewNavigationGuard constructs a NavigationGuard.
func NewNavigationGuard(opts NavigationGuardOptions) *NavigationGuard {
	if opts.Sessions == nil {
		panic("SessionReader is required")
	}
	if opts.Events == nil {
		panic("EventPublisher is required")
	}
	return &NavigationGuard{
		sessions: opts.Sessions,
		events:   opts.Events,
		logger:   opts.Observability.logger(),
		metrics:  opts.Observability.Metrics,
	}
}

// Evaluate runs the guard for one attempt.
//
// When the attempt is rejected exactly one event is published before
// Evaluate returns: notAuthorized if the actor is authenticated,
// notAuthenticated otherwise. The decision and the event choice are both
// taken from a single session snapshot.
func (g *NavigationGuard) Evaluate(ctx context.Context, nav *domainauth.Navigation) Decision {
	if nav == nil {
		panic("navigation is required")
	}
	if nav.ID == "" {
		nav.ID = uuid.NewString()
	}

	session := g.sessions.Snapshot()
	if domainauth.IsAuthorized(nav.Requirement, session) {
		metrics.EmitNavigationDecision(g.metrics, nav.To, true)
		return DecisionAllow
	}

	if err := nav.Requirement.Validate(); err != nil {
		// Registration should have refused this view; never fall back to allow.
		g.logger.ErrorContext(ctx, "navigation requirement invalid",
			slog.String("view", nav.To), slog.Any("error", err))
	}

	kind := domainauth.EventNotAuthenticated
	if session.IsAuthenticated() {
		kind = domainauth.EventNotAuthorized
	}

	g.logger.InfoContext(ctx, "navigation blocked",
		slog.String("navigation_id", nav.ID),
		slog.String("view", nav.To),
		slog.String("role", session.Role.String()),
		slog.String("event", kind.String()))
	metrics.EmitNavigationDecision(g.metrics, nav.To, false)

	g.events.Publish(ctx, domainauth.Event{Kind: kind, Navigation: nav})
	return DecisionCancel
}
