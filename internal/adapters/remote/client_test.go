package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	"github.com/target/mmk-ui-gate/internal/events"
	"github.com/target/mmk-ui-gate/internal/mocks"
	"github.com/target/mmk-ui-gate/internal/service"
)

type harness struct {
	client *Client
	rec    *events.Recorder
}

func newHarness(t *testing.T, h http.Handler) harness {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	bus := events.NewBus()
	rec := &events.Recorder{}
	bus.Subscribe(rec.Handle)
	client, err := NewClient(ClientOptions{
		BaseURL:    srv.URL,
		Classifier: service.NewResponseClassifier(service.ResponseClassifierOptions{Events: bus}),
	})
	require.NoError(t, err)
	return harness{client: client, rec: rec}
}

func statusHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":"nope"}`))
	})
}

func TestNewClient_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	classifier := mocks.NewMockFailureClassifier(ctrl)

	_, err := NewClient(ClientOptions{BaseURL: "http://localhost"})
	assert.Error(t, err)

	_, err = NewClient(ClientOptions{BaseURL: "ftp://localhost", Classifier: classifier})
	assert.Error(t, err)

	c, err := NewClient(ClientOptions{BaseURL: "http://localhost:9000/", Classifier: classifier})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", c.BaseURL())
	assert.Equal(t, defaultTimeout, c.http.Timeout)
	assert.NotNil(t, c.http.Jar)
}

func TestClient_Do_DecodesSuccess(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/things", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode(map[string]string{"hello": "world"})
	}))

	var out map[string]string
	require.NoError(t, h.client.Do(context.Background(), Request{Path: "/api/things"}, &out))
	assert.Equal(t, "world", out["hello"])
	assert.Empty(t, h.rec.Kinds())
}

func TestClient_Do_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		status int
		want   []domainauth.EventKind
	}{
		{status: http.StatusUnauthorized, want: []domainauth.EventKind{domainauth.EventNotAuthenticated}},
		{status: http.StatusForbidden, want: []domainauth.EventKind{domainauth.EventNotAuthorized}},
		{status: domainauth.StatusSessionTimeout, want: []domainauth.EventKind{domainauth.EventSessionTimeout}},
		{status: http.StatusInternalServerError, want: []domainauth.EventKind{}},
		{status: http.StatusNotFound, want: []domainauth.EventKind{}},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			h := newHarness(t, statusHandler(tt.status))

			err := h.client.Do(context.Background(), Request{Path: "/api/x"}, nil)

			var failure *domainauth.RemoteFailure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, tt.status, failure.StatusCode)
			assert.Equal(t, http.MethodGet, failure.Method)
			assert.JSONEq(t, `{"error":"nope"}`, string(failure.Body))
			assert.Equal(t, tt.want, h.rec.Kinds())
			for _, evt := range h.rec.Events() {
				assert.Same(t, failure, evt.Failure)
			}
		})
	}
}

func TestClient_Do_ReturnsWhatClassifierReturns(t *testing.T) {
	srv := httptest.NewServer(statusHandler(http.StatusForbidden))
	t.Cleanup(srv.Close)

	ctrl := gomock.NewController(t)
	classifier := mocks.NewMockFailureClassifier(ctrl)
	classifier.EXPECT().
		Classify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f *domainauth.RemoteFailure) error { return f })

	c, err := NewClient(ClientOptions{BaseURL: srv.URL, Classifier: classifier})
	require.NoError(t, err)

	err = c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/auth", Body: map[string]string{"a": "b"}}, nil)
	var failure *domainauth.RemoteFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, http.MethodPost, failure.Method)
}

func TestClient_Do_TransportErrorUnchanged(t *testing.T) {
	srv := httptest.NewServer(statusHandler(http.StatusOK))
	url := srv.URL
	srv.Close()

	ctrl := gomock.NewController(t)
	classifier := mocks.NewMockFailureClassifier(ctrl) // no calls expected

	c, err := NewClient(ClientOptions{BaseURL: url, Classifier: classifier})
	require.NoError(t, err)

	err = c.Do(context.Background(), Request{Path: "/"}, nil)
	require.Error(t, err)
	var failure *domainauth.RemoteFailure
	assert.False(t, errors.As(err, &failure))
}

type timingSink struct {
	mu      sync.Mutex
	timings []map[string]string
}

func (s *timingSink) Count(string, int64, map[string]string) {}

func (s *timingSink) Timing(name string, d time.Duration, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "remote.call.duration" && d >= 0 {
		s.timings = append(s.timings, tags)
	}
}

func TestClient_Do_RecordsCallDuration(t *testing.T) {
	srv := httptest.NewServer(statusHandler(http.StatusForbidden))
	t.Cleanup(srv.Close)

	ctrl := gomock.NewController(t)
	classifier := mocks.NewMockFailureClassifier(ctrl)
	classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(errors.New("classified"))

	sink := &timingSink{}
	c, err := NewClient(ClientOptions{BaseURL: srv.URL, Classifier: classifier, Metrics: sink})
	require.NoError(t, err)

	require.Error(t, c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/auth"}, nil))

	url := srv.URL
	srv.Close()
	down, err := NewClient(ClientOptions{BaseURL: url, Classifier: classifier, Metrics: sink})
	require.NoError(t, err)
	require.Error(t, down.Do(context.Background(), Request{Path: "/"}, nil))

	assert.Equal(t, []map[string]string{
		{"method": http.MethodPost, "status": "403"},
		{"method": http.MethodGet, "status": "error"},
	}, sink.timings)
}

func TestClient_KeepsSessionCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session_id", Value: "abc", Path: "/"})
	})
	mux.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("session_id")
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"session": c.Value})
	})
	h := newHarness(t, mux)
	ctx := context.Background()

	require.NoError(t, h.client.Do(ctx, Request{Path: "/login"}, nil))
	var out map[string]string
	require.NoError(t, h.client.Do(ctx, Request{Path: "/whoami"}, &out))
	assert.Equal(t, "abc", out["session"])
}
