package events

// Package events provides the process-wide channel for auth events.
// Delivery is synchronous: every subscriber registered at publish time has
// run before Publish returns. Subscribers must not panic; a panicking
// subscriber is a bug and propagates to the publisher.

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	"github.com/target/mmk-ui-gate/internal/observability/metrics"
	"github.com/target/mmk-ui-gate/internal/observability/statsd"
)

// Handler receives a published event.
type Handler = func(ctx context.Context, evt domainauth.Event)

type subscription struct {
	id      uint64
	kinds   map[domainauth.EventKind]struct{} // empty means every kind
	handler Handler
}

func (s subscription) wants(kind domainauth.EventKind) bool {
	if len(s.kinds) == 0 {
		return true
	}
	_, ok := s.kinds[kind]
	return ok
}

// Bus is a synchronous publish/subscribe channel with a closed set of event kinds.
type Bus struct {
	logger  *slog.Logger
	metrics statsd.Sink
	now     func() time.Time

	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger used for debug tracing of published events.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMetrics counts every published event on the given sink.
func WithMetrics(sink statsd.Sink) Option {
	return func(b *Bus) { b.metrics = sink }
}

// WithClock overrides the timestamp source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Bus) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers h for the given kinds, or for every kind when none are given.
// The returned function removes the subscription; calling it more than once is a no-op.
// Unknown kinds panic: the vocabulary is closed and a typo is a programming error.
func (b *Bus) Subscribe(h Handler, kinds ...domainauth.EventKind) (unsubscribe func()) {
	if h == nil {
		panic("events: nil handler")
	}
	set := make(map[domainauth.EventKind]struct{}, len(kinds))
	for _, k := range kinds {
		if !k.Valid() {
			panic("events: unknown event kind " + string(k))
		}
		set[k] = struct{}{}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, kinds: set, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers evt to the matching subscribers in registration order.
// It stamps ID and OccurredAt when they are unset. Subscribers run outside the
// bus lock, so they may publish or subscribe themselves.
func (b *Bus) Publish(ctx context.Context, evt domainauth.Event) {
	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = b.now()
	}

	b.mu.RLock()
	targets := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.wants(evt.Kind) {
			targets = append(targets, s.handler)
		}
	}
	b.mu.RUnlock()

	b.logger.DebugContext(ctx, "auth event published",
		slog.String("event_id", evt.ID),
		slog.String("kind", evt.Kind.String()),
		slog.Int("subscribers", len(targets)))
	metrics.EmitAuthEvent(b.metrics, evt.Kind)

	for _, h := range targets {
		h(ctx, evt)
	}
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
