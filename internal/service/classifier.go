package service

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	"github.com/target/mmk-ui-gate/internal/observability/metrics"
	"github.com/target/mmk-ui-gate/internal/observability/statsd"
	"github.com/target/mmk-ui-gate/internal/ports"
)

// EventKindForStatus maps a failure status to the auth event it signals.
// Only 401, 403 and 419 are auth failures; every other status maps to nothing.
func EventKindForStatus(status int) (domainauth.EventKind, bool) {
	switch status {
	case http.StatusUnauthorized:
		return domainauth.EventNotAuthenticated, true
	case http.StatusForbidden:
		return domainauth.EventNotAuthorized, true
	case domainauth.StatusSessionTimeout:
		return domainauth.EventSessionTimeout, true
	default:
		return "", false
	}
}

// ResponseClassifierOptions groups dependencies for ResponseClassifier.
type ResponseClassifierOptions struct {
	Events        ports.EventPublisher // Required
	Observability Observability        // Optional
}

// ResponseClassifier annotates failed remote calls with auth events.
type ResponseClassifier struct {
	events  ports.EventPublisher
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewResponseClassifier constructs a ResponseClassifier.
func NewResponseClassifier(opts ResponseClassifierOptions) *ResponseClassifier {
	if opts.Events == nil {
		panic("EventPublisher is required")
	}
	return &ResponseClassifier{
		events:  opts.Events,
		logger:  opts.Observability.logger(),
		metrics: opts.Observability.Metrics,
	}
}

// Classify publishes the event matching failure's status, if any, and returns
// failure itself so the caller still sees the original error. The status is
// read from, and the event carries, the same failure value.
func (c *ResponseClassifier) Classify(ctx context.Context, failure *domainauth.RemoteFailure) error {
	if failure == nil {
		return nil
	}

	kind, ok := EventKindForStatus(failure.StatusCode)
	metrics.EmitRemoteFailure(c.metrics, failure.StatusCode, ok)
	if !ok {
		return failure
	}

	c.logger.DebugContext(ctx, "remote failure classified",
		slog.Int("status", failure.StatusCode),
		slog.String("url", failure.URL),
		slog.String("event", kind.String()))
	c.events.Publish(ctx, domainauth.Event{Kind: kind, Failure: failure})
	return failure
}
