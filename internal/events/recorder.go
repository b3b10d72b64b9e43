package events

import (
	"context"
	"sync"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
)

// Recorder is a subscriber that keeps every event it receives.
// Useful in tests and for diagnostics endpoints.
type Recorder struct {
	mu     sync.Mutex
	events []domainauth.Event
}

// Handle implements Handler.
func (r *Recorder) Handle(_ context.Context, evt domainauth.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

// Events returns a copy of the received events.
func (r *Recorder) Events() []domainauth.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domainauth.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kinds of the received events in order.
func (r *Recorder) Kinds() []domainauth.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domainauth.EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
