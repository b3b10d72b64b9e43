package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	"github.com/target/mmk-ui-gate/internal/events"
	mockauth "github.com/target/mmk-ui-gate/internal/mocks/auth"
	"github.com/target/mmk-ui-gate/internal/service"
)

type fakeViewData struct {
	err   error
	calls []string
}

func (f *fakeViewData) Fetch(_ context.Context, name string) (map[string]any, error) {
	f.calls = append(f.calls, name)
	if f.err != nil {
		return nil, f.err
	}
	return map[string]any{"widget": "for-" + name}, nil
}

type gateFixture struct {
	handler  http.Handler
	bus      *events.Bus
	rec      *events.Recorder
	sessions *service.SessionStore
	data     *fakeViewData
	endpoint *mockauth.StubEndpoint
}

func testViews(t *testing.T) *service.ViewRegistry {
	t.Helper()
	reg := service.NewViewRegistry()
	require.NoError(t, reg.RegisterAll(
		service.View{Name: "dashboard", Path: "/dashboard", Title: "Dashboard",
			Requirement: domainauth.MustNavigationRequirement(domainauth.RoleAdmin, domainauth.RoleEditor)},
		service.View{Name: "admin", Path: "/admin", Title: "Admin",
			Requirement: domainauth.MustNavigationRequirement(domainauth.RoleAdmin)},
		service.View{Name: "login", Path: "/login", Title: "Sign in",
			Requirement: domainauth.MustNavigationRequirement(domainauth.RoleAll)},
	))
	return reg
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	bus := events.NewBus()
	rec := &events.Recorder{}
	bus.Subscribe(rec.Handle)
	sessions := service.NewSessionStore()
	views := testViews(t)
	login, _ := views.Lookup("login")
	NewLoginRedirector(login.Path).Attach(bus)

	endpoint := mockauth.NewStubEndpoint()
	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Endpoint: endpoint,
		Sessions: sessions,
		Events:   bus,
	})
	authSvc.Attach(bus)
	data := &fakeViewData{}

	h, err := NewRouter(RouterServices{
		Guard:    service.NewNavigationGuard(service.NavigationGuardOptions{Sessions: sessions, Events: bus}),
		Auth:     authSvc,
		Sessions: sessions,
		Views:    views,
		ViewData: data,
	})
	require.NoError(t, err)
	return &gateFixture{handler: h, bus: bus, rec: rec, sessions: sessions, data: data, endpoint: endpoint}
}

func (f *gateFixture) get(path string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if htmx {
		req.Header.Set("Hx-Request", "true")
		req.Header.Set("Hx-Current-Url", "http://localhost/dashboard")
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func (f *gateFixture) postForm(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("Hx-Request", "true")
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func creds(user, pass string) url.Values {
	return url.Values{"username": {user}, "password": {pass}}
}
