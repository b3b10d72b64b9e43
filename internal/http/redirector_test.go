package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	"github.com/target/mmk-ui-gate/internal/events"
)

func TestLoginRedirector(t *testing.T) {
	bus := events.NewBus()
	r := NewLoginRedirector("/login")
	detach := r.Attach(bus)
	ctx := context.Background()

	anon := &domainauth.Navigation{To: "dashboard", Path: "/dashboard"}
	bus.Publish(ctx, domainauth.Event{Kind: domainauth.EventNotAuthenticated, Navigation: anon})
	target, ok := anon.Redirect()
	assert.True(t, ok)
	assert.Equal(t, "/login", target)
	assert.Equal(t, NoticeSignIn, anon.Notice())

	denied := &domainauth.Navigation{To: "admin", Path: "/admin"}
	bus.Publish(ctx, domainauth.Event{Kind: domainauth.EventNotAuthorized, Navigation: denied})
	_, ok = denied.Redirect()
	assert.False(t, ok)
	assert.Equal(t, "You do not have access to admin.", denied.Notice())

	// no redirect loop onto the login view itself
	self := &domainauth.Navigation{To: "login", Path: "/login"}
	r.Handle(ctx, domainauth.Event{Kind: domainauth.EventNotAuthenticated, Navigation: self})
	_, ok = self.Redirect()
	assert.False(t, ok)

	assert.NotPanics(t, func() {
		bus.Publish(ctx, domainauth.Event{Kind: domainauth.EventNotAuthenticated})
	})

	detach()
	later := &domainauth.Navigation{To: "dashboard", Path: "/dashboard"}
	bus.Publish(ctx, domainauth.Event{Kind: domainauth.EventNotAuthenticated, Navigation: later})
	_, ok = later.Redirect()
	assert.False(t, ok)
}
