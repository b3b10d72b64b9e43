package ports

// Package ports defines interfaces (hexagonal ports) for the authorization gate.
// Implementations live in internal/adapters and internal/events; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
)

// EventPublisher broadcasts auth events to every current subscriber before returning.
type EventPublisher interface {
	Publish(ctx context.Context, evt domainauth.Event)
}

// EventSubscriber registers handlers for a subset of event kinds (all kinds when none are given).
type EventSubscriber interface {
	Subscribe(h func(ctx context.Context, evt domainauth.Event), kinds ...domainauth.EventKind) (unsubscribe func())
}

// SessionReader exposes the settled state of the current actor.
type SessionReader interface {
	Snapshot() domainauth.Session
}

// AuthEndpoint is the remote authentication endpoint.
type AuthEndpoint interface {
	// Authenticate submits credentials and returns the server-issued session.
	Authenticate(ctx context.Context, creds domainauth.Credentials) (domainauth.Session, error)

	// Revoke ends the server-side session. A failed call returns the classified failure.
	Revoke(ctx context.Context, sessionID string) error
}

// FailureClassifier turns a failed remote response into an auth event and hands the failure back.
type FailureClassifier interface {
	Classify(ctx context.Context, failure *domainauth.RemoteFailure) error
}

// SessionRecord is a server-side record kept by the development auth endpoint.
type SessionRecord struct {
	Session   domainauth.Session `json:"session"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// ErrSessionRecordNotFound is returned by SessionRecordStore.Get for unknown or expired ids.
var ErrSessionRecordNotFound = errors.New("session record not found")

// SessionRecordStore persists server-side session records.
type SessionRecordStore interface {
	Save(ctx context.Context, rec SessionRecord) error
	Get(ctx context.Context, id string) (SessionRecord, error)
	Delete(ctx context.Context, id string) error
}
