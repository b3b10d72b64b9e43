package metrics

import (
	"strconv"
	"time"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	"github.com/target/mmk-ui-gate/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultAllowed = "allowed"
	ResultBlocked = "blocked"
)

// EmitNavigationDecision counts one guard evaluation.
func EmitNavigationDecision(sink statsd.Sink, view string, allowed bool) {
	if sink == nil {
		return
	}
	result := ResultBlocked
	if allowed {
		result = ResultAllowed
	}
	sink.Count("navigation.decision", 1, map[string]string{
		"view":   view,
		"result": result,
	})
}

// EmitAuthEvent counts one published auth event.
func EmitAuthEvent(sink statsd.Sink, kind domainauth.EventKind) {
	if sink == nil {
		return
	}
	sink.Count("auth.event", 1, map[string]string{"kind": kind.String()})
}

// EmitRemoteFailure counts one failed remote call, tagging whether it was classified.
func EmitRemoteFailure(sink statsd.Sink, status int, classified bool) {
	if sink == nil {
		return
	}
	sink.Count("remote.failure", 1, map[string]string{
		"status":     strconv.Itoa(status),
		"classified": strconv.FormatBool(classified),
	})
}

// EmitRemoteCall records how long one remote call took. A call that never got
// a response is tagged with status "error".
func EmitRemoteCall(sink statsd.Sink, method string, status int, d time.Duration) {
	if sink == nil {
		return
	}
	tags := map[string]string{"method": method, "status": "error"}
	if status > 0 {
		tags["status"] = strconv.Itoa(status)
	}
	sink.Timing("remote.call.duration", d, tags)
}
