package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	apperrors "github.com/target/mmk-ui-gate/internal/errors"
	"github.com/target/mmk-ui-gate/internal/events"
	mockauth "github.com/target/mmk-ui-gate/internal/mocks/auth"
	"github.com/target/mmk-ui-gate/internal/service"
)

func TestRouter_GuestIsSentToLogin(t *testing.T) {
	f := newGateFixture(t)

	rr := f.get("/dashboard", false)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	assert.Equal(t, []domainauth.EventKind{domainauth.EventNotAuthenticated}, f.rec.Kinds())
	assert.Empty(t, f.data.calls, "nothing is fetched for a blocked view")
}

func TestRouter_GuestHTMXRedirectCarriesNotice(t *testing.T) {
	f := newGateFixture(t)

	rr := f.get("/views/dashboard", true)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Hx-Redirect"))
	assert.Contains(t, rr.Header().Get("Hx-Trigger"), TriggerNotice)
	assert.Equal(t, "/dashboard", f.rec.Events()[0].Navigation.From)
}

func TestRouter_AuthenticatedWrongRoleStaysPut(t *testing.T) {
	f := newGateFixture(t)
	f.sessions.Create("s", "eve", domainauth.RoleEditor)

	rr := f.get("/admin", true)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "none", rr.Header().Get("Hx-Reswap"))
	assert.Empty(t, rr.Header().Get("Hx-Redirect"))
	assert.Contains(t, rr.Header().Get("Hx-Trigger"), "You do not have access to admin.")

	rr = f.get("/admin", false)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "You do not have access to admin.")

	assert.Equal(t, []domainauth.EventKind{domainauth.EventNotAuthorized, domainauth.EventNotAuthorized}, f.rec.Kinds())
}

func TestRouter_AllowedViewRenders(t *testing.T) {
	f := newGateFixture(t)
	f.sessions.Create("s", "eve", domainauth.RoleEditor)

	rr := f.get("/dashboard", false)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<html")
	assert.Contains(t, rr.Body.String(), "for-dashboard")

	rr = f.get("/views/dashboard", true)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "<html", "htmx gets the fragment only")
	assert.Equal(t, "/dashboard", rr.Header().Get("Hx-Push-Url"))
	assert.Empty(t, f.rec.Kinds())
}

func TestRouter_PublicLoginViewForGuest(t *testing.T) {
	f := newGateFixture(t)

	rr := f.get("/login", false)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `name="username"`)
	assert.Empty(t, f.rec.Kinds())
	assert.Empty(t, f.data.calls)
}

func TestRouter_UnknownPathFallsBackToLogin(t *testing.T) {
	f := newGateFixture(t)

	for _, path := range []string{"/nowhere", "/views/nowhere"} {
		rr := f.get(path, false)
		assert.Equal(t, http.StatusSeeOther, rr.Code, path)
		assert.Equal(t, "/login", rr.Header().Get("Location"), path)
	}
	assert.Empty(t, f.rec.Kinds())
}

func TestRouter_RootServesHomeView(t *testing.T) {
	f := newGateFixture(t)
	f.sessions.Create("s", "ada", domainauth.RoleAdmin)

	rr := f.get("/", false)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `data-view="dashboard"`)
}

func TestRouter_LoginFlow(t *testing.T) {
	f := newGateFixture(t)

	rr := f.postForm("/login", creds("ada", "pw"), false)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
	assert.Equal(t, domainauth.RoleAdmin, f.sessions.CurrentRole())

	rr = f.postForm("/logout", nil, true)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Hx-Redirect"))
	assert.Contains(t, rr.Header().Get("Hx-Trigger"), domainauth.EventLogoutSuccess.String())
	assert.False(t, f.sessions.IsAuthenticated())

	rr = f.postForm("/login", creds("eve", "pw"), true)
	assert.Equal(t, "/dashboard", rr.Header().Get("Hx-Redirect"))
	assert.Contains(t, rr.Header().Get("Hx-Trigger"), domainauth.EventLoginSuccess.String())

	assert.Equal(t, []domainauth.EventKind{
		domainauth.EventLoginSuccess,
		domainauth.EventLogoutSuccess,
		domainauth.EventLoginSuccess,
	}, f.rec.Kinds())
}

func TestRouter_LoginFailures(t *testing.T) {
	f := newGateFixture(t)

	rr := f.postForm("/login", creds("ada", "wrong"), true)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid username or password.")
	assert.Contains(t, rr.Header().Get("Hx-Trigger"), domainauth.EventLoginFailed.String())

	rr = f.postForm("/login", creds("", ""), false)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"ada","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	jr := httptest.NewRecorder()
	f.handler.ServeHTTP(jr, req)
	assert.Equal(t, http.StatusUnauthorized, jr.Code)
	assert.JSONEq(t, `{"error":"unauthenticated","message":"Invalid username or password."}`, jr.Body.String())

	assert.False(t, f.sessions.IsAuthenticated())
}

func TestRouter_LoginRemoteOutage(t *testing.T) {
	f := newGateFixture(t)
	f.endpoint.AuthenticateFunc = func(context.Context, domainauth.Credentials) (domainauth.Session, error) {
		return domainauth.Session{}, &domainauth.RemoteFailure{Method: http.MethodPost, StatusCode: http.StatusServiceUnavailable}
	}

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"ada","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.JSONEq(t, `{"error":"login_failed","message":"The sign-in service is unavailable."}`, rr.Body.String())
	assert.False(t, f.sessions.IsAuthenticated())
}

func TestRouter_LoginJSON(t *testing.T) {
	f := newGateFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"eve","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	f.handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"authenticated":true,"user_id":"eve","role":"editor"}`, rr.Body.String())
}

func TestRouter_SessionEndpoint(t *testing.T) {
	f := newGateFixture(t)

	rr := f.get("/session", false)
	assert.JSONEq(t, `{"authenticated":false,"role":"guest"}`, rr.Body.String())

	f.sessions.Create("s", "ada", domainauth.RoleAdmin)
	rr = f.get("/session", false)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, true, body["authenticated"])
	assert.NotContains(t, body, "id", "the session id stays server-side")
}

func TestRouter_Health(t *testing.T) {
	f := newGateFixture(t)

	rr := f.get("/healthz", false)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRouter_RemoteFailuresOnAllowedView(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantLoc  string
	}{
		{name: "session timeout", err: &domainauth.RemoteFailure{StatusCode: domainauth.StatusSessionTimeout}, wantCode: http.StatusSeeOther, wantLoc: "/login"},
		{name: "unauthorized", err: &domainauth.RemoteFailure{StatusCode: http.StatusUnauthorized}, wantCode: http.StatusSeeOther, wantLoc: "/login"},
		{name: "forbidden", err: &domainauth.RemoteFailure{StatusCode: http.StatusForbidden}, wantCode: http.StatusForbidden},
		{name: "server error", err: &domainauth.RemoteFailure{StatusCode: http.StatusInternalServerError}, wantCode: http.StatusBadGateway},
		{name: "transport", err: errors.New("connection refused"), wantCode: http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGateFixture(t)
			f.sessions.Create("s", "eve", domainauth.RoleEditor)
			f.data.err = tt.err

			rr := f.get("/dashboard", false)

			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantLoc, rr.Header().Get("Location"))
		})
	}
}

func TestRouter_ObserverPanicIsNotSwallowedSilently(t *testing.T) {
	f := newGateFixture(t)
	f.bus.Subscribe(func(context.Context, domainauth.Event) { panic("observer bug") }, domainauth.EventNotAuthenticated)

	rr := f.get("/dashboard", false)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestNewRouter_Validation(t *testing.T) {
	bus := events.NewBus()
	sessions := service.NewSessionStore()
	base := RouterServices{
		Guard:    service.NewNavigationGuard(service.NavigationGuardOptions{Sessions: sessions, Events: bus}),
		Auth:     service.NewAuthService(service.AuthServiceOptions{Endpoint: mockauth.NewStubEndpoint(), Sessions: sessions, Events: bus}),
		Sessions: sessions,
	}

	_, err := NewRouter(base)
	assert.Error(t, err, "views are required")

	s := base
	s.Views = testViews(t)
	s.LoginView = "missing"
	_, err = NewRouter(s)
	assert.True(t, apperrors.IsConfiguration(err))

	s.LoginView = "admin"
	_, err = NewRouter(s)
	assert.True(t, apperrors.IsConfiguration(err), "login view must be public")

	s.LoginView = ""
	s.HomeView = "missing"
	_, err = NewRouter(s)
	assert.True(t, apperrors.IsConfiguration(err))
}
