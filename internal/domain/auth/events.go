package auth

import "time"

// EventKind names an authentication outcome. The set is closed; values are the wire names.
type EventKind string

const (
	EventLoginSuccess     EventKind = "auth-login-success"
	EventLoginFailed      EventKind = "auth-login-failed"
	EventLogoutSuccess    EventKind = "auth-logout-success"
	EventSessionTimeout   EventKind = "auth-session-timeout"
	EventNotAuthenticated EventKind = "auth-not-authenticated"
	EventNotAuthorized    EventKind = "auth-not-authorized"
)

// EventKinds returns the closed event vocabulary.
func EventKinds() []EventKind {
	return []EventKind{
		EventLoginSuccess,
		EventLoginFailed,
		EventLogoutSuccess,
		EventSessionTimeout,
		EventNotAuthenticated,
		EventNotAuthorized,
	}
}

// Valid reports whether k belongs to the closed event set.
func (k EventKind) Valid() bool {
	switch k {
	case EventLoginSuccess, EventLoginFailed, EventLogoutSuccess,
		EventSessionTimeout, EventNotAuthenticated, EventNotAuthorized:
		return true
	default:
		return false
	}
}

func (k EventKind) String() string { return string(k) }

// Event is a fire-and-forget notification. Only the field matching the origin is set:
// Navigation for guard events, Failure for classified responses, Session for
// loginSuccess and Err for loginFailed.
type Event struct {
	ID         string
	Kind       EventKind
	OccurredAt time.Time

	Navigation *Navigation
	Failure    *RemoteFailure
	Session    *Session
	Err        error
}
