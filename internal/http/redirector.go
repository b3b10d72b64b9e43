package httpx

import (
	"context"
	"fmt"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	"github.com/target/mmk-ui-gate/internal/ports"
)

// Notices shown after a blocked navigation.
const (
	NoticeSignIn     = "Please sign in to continue."
	noticeNotAllowed = "You do not have access to %s."
)

// LoginRedirector corrects blocked navigations: an anonymous actor is sent
// to the login view, an authenticated one is told the view is off limits.
// Events without a navigation, such as those from remote failures, are ignored.
type LoginRedirector struct {
	loginPath string
}

// NewLoginRedirector returns a redirector sending actors to loginPath.
func NewLoginRedirector(loginPath string) *LoginRedirector {
	return &LoginRedirector{loginPath: loginPath}
}

// Handle reacts to notAuthenticated and notAuthorized.
func (l *LoginRedirector) Handle(_ context.Context, evt domainauth.Event) {
	nav := evt.Navigation
	if nav == nil {
		return
	}
	switch evt.Kind {
	case domainauth.EventNotAuthenticated:
		if nav.Path != l.loginPath {
			nav.RedirectTo(l.loginPath)
		}
		nav.Notify(NoticeSignIn)
	case domainauth.EventNotAuthorized:
		nav.Notify(fmt.Sprintf(noticeNotAllowed, nav.To))
	}
}

// Attach subscribes the redirector to the events it handles.
func (l *LoginRedirector) Attach(sub ports.EventSubscriber) (detach func()) {
	return sub.Subscribe(l.Handle, domainauth.EventNotAuthenticated, domainauth.EventNotAuthorized)
}
