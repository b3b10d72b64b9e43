package ports_test

import (
	"testing"

	"github.com/target/mmk-ui-gate/internal/adapters/memory"
	redisadapter "github.com/target/mmk-ui-gate/internal/adapters/redis"
	"github.com/target/mmk-ui-gate/internal/adapters/remote"
	"github.com/target/mmk-ui-gate/internal/events"
	"github.com/target/mmk-ui-gate/internal/mocks"
	"github.com/target/mmk-ui-gate/internal/ports"
	"github.com/target/mmk-ui-gate/internal/service"
)

// This test only verifies that implementations conform to the ports at compile time.
func TestImplementationsSatisfyPorts(t *testing.T) {
	t.Helper()

	var _ ports.EventPublisher = (*events.Bus)(nil)
	var _ ports.EventPublisher = (*mocks.MockEventPublisher)(nil)
	var _ ports.SessionReader = (*service.SessionStore)(nil)
	var _ ports.SessionReader = (*mocks.MockSessionReader)(nil)
	var _ ports.AuthEndpoint = (*remote.AuthEndpoint)(nil)
	var _ ports.AuthEndpoint = (*mocks.MockAuthEndpoint)(nil)
	var _ ports.FailureClassifier = (*service.ResponseClassifier)(nil)
	var _ ports.SessionRecordStore = (*memory.SessionRecordStore)(nil)
	var _ ports.SessionRecordStore = (*redisadapter.SessionRecordStore)(nil)
}
