package auth

import (
	"fmt"
	"net/http"
)

// StatusSessionTimeout is the non-standard status the remote endpoint uses for expired sessions.
const StatusSessionTimeout = 419

// RemoteFailure is a failed response from the remote endpoint.
// It is the single object both classified and handed back to the caller.
type RemoteFailure struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

func (f *RemoteFailure) Error() string {
	status := f.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", f.StatusCode, statusText(f.StatusCode))
	}
	return fmt.Sprintf("remote %s %s: %s", f.Method, f.URL, status)
}

func statusText(code int) string {
	if code == StatusSessionTimeout {
		return "Session Timeout"
	}
	return http.StatusText(code)
}
