// Package mocks provides gomock mocks of the ports used by the authorization gate.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	events := mocks.NewMockEventPublisher(ctrl)
//	events.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(1)
package mocks

// Generate mock for EventPublisher interface from internal/ports package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=event_publisher_mock.go github.com/target/mmk-ui-gate/internal/ports EventPublisher

// Generate mock for SessionReader interface from internal/ports package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_reader_mock.go github.com/target/mmk-ui-gate/internal/ports SessionReader

// Generate mock for AuthEndpoint interface from internal/ports package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_endpoint_mock.go github.com/target/mmk-ui-gate/internal/ports AuthEndpoint

// Generate mock for FailureClassifier interface from internal/ports package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=failure_classifier_mock.go github.com/target/mmk-ui-gate/internal/ports FailureClassifier
