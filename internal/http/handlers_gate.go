package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	apperrors "github.com/target/mmk-ui-gate/internal/errors"
	"github.com/target/mmk-ui-gate/internal/ports"
	"github.com/target/mmk-ui-gate/internal/service"
)

// TriggerNotice is the client-side event carrying a notice after a blocked navigation.
const TriggerNotice = "gate-notice"

type gateHandlers struct {
	guard    Navigator
	auth     Authenticator
	sessions ports.SessionReader
	views    *service.ViewRegistry
	data     ViewFetcher
	home     service.View
	login    service.View
	render   *TemplateRenderer
	logger   *slog.Logger
}

const healthResponse = `{"status":"ok"}`

// healthHandler returns a simple 200 OK status for readiness/liveness checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = io.WriteString(w, healthResponse)
}

type sessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	UserID        string          `json:"user_id,omitempty"`
	Role          domainauth.Role `json:"role"`
}

func toSessionResponse(s domainauth.Session) sessionResponse {
	return sessionResponse{Authenticated: s.IsAuthenticated(), UserID: s.UserID, Role: s.Role}
}

// Session reports the current actor. GET /session.
func (h *gateHandlers) Session(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, toSessionResponse(h.sessions.Snapshot()))
}

// Home sends the actor to the home view. GET /.
func (h *gateHandlers) Home(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, h.home)
}

// ViewByName serves a view by its registered name. GET /views/{name}.
// Unknown names fall back to the login view.
func (h *gateHandlers) ViewByName(w http.ResponseWriter, r *http.Request) {
	v, ok := h.views.Lookup(r.PathValue("name"))
	if !ok {
		h.redirect(w, r, h.login.Path)
		return
	}
	h.serveView(w, r, v)
}

// ViewByPath serves the view registered at the request path; anything else
// falls back to the login view.
func (h *gateHandlers) ViewByPath(w http.ResponseWriter, r *http.Request) {
	v, ok := h.views.ByPath(r.URL.Path)
	if !ok {
		h.redirect(w, r, h.login.Path)
		return
	}
	h.serveView(w, r, v)
}

// serveView asks the guard before anything about the view is rendered or fetched.
func (h *gateHandlers) serveView(w http.ResponseWriter, r *http.Request, v service.View) {
	nav := service.NewNavigation(CurrentPath(r), v)
	if decision := h.guard.Evaluate(r.Context(), nav); !decision.Allowed() {
		h.blocked(w, r, nav)
		return
	}

	data, err := h.fetch(r, v)
	if err != nil {
		h.remoteError(w, r, err)
		return
	}

	kind := PageView
	if v.Name == h.login.Name {
		kind = PageLogin
	}
	if IsHTMX(r) {
		HTMX(w).PushURL(v.Path)
	}
	h.render.Render(w, r, http.StatusOK, h.page(kind, v, func(p *PageData) { p.Data = data }))
}

func (h *gateHandlers) fetch(r *http.Request, v service.View) (map[string]any, error) {
	if h.data == nil || v.Name == h.login.Name {
		return nil, nil
	}
	return h.data.Fetch(r.Context(), v.Name)
}

// blocked applies whatever the event observers attached to the cancelled
// navigation. Without a redirect the actor stays where they are.
func (h *gateHandlers) blocked(w http.ResponseWriter, r *http.Request, nav *domainauth.Navigation) {
	notice := nav.Notice()
	if notice != "" && IsHTMX(r) {
		HTMX(w).Trigger(TriggerNotice, map[string]string{"message": notice})
	}
	if target, ok := nav.Redirect(); ok {
		h.redirect(w, r, target)
		return
	}
	if IsHTMX(r) {
		HTMX(w).Stay()
		return
	}
	h.render.Render(w, r, http.StatusForbidden, h.page(PageBlocked, service.View{Title: "Not available"}, func(p *PageData) {
		p.Notice = notice
	}))
}

// remoteError renders a failed view fetch. The failure has already been
// classified, so a session timeout has reset the local session by now.
func (h *gateHandlers) remoteError(w http.ResponseWriter, r *http.Request, err error) {
	var failure *domainauth.RemoteFailure
	if errors.As(err, &failure) {
		kind, _ := service.EventKindForStatus(failure.StatusCode)
		switch kind {
		case domainauth.EventNotAuthenticated, domainauth.EventSessionTimeout:
			h.redirect(w, r, h.login.Path)
			return
		case domainauth.EventNotAuthorized:
			h.render.Render(w, r, http.StatusForbidden, h.page(PageBlocked, service.View{Title: "Not available"}, nil))
			return
		}
	}
	h.logger.WarnContext(r.Context(), "view fetch failed", slog.Any("error", err))
	h.render.Render(w, r, http.StatusBadGateway, h.page(PageError, service.View{Title: "Error"}, func(p *PageData) {
		p.Error = "The server could not be reached."
	}))
}

// Login runs the login flow with form or JSON credentials. POST /login.
func (h *gateHandlers) Login(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.credentials(w, r)
	if !ok {
		return
	}

	sess, err := h.auth.Login(r.Context(), creds)
	if err != nil {
		h.loginFailed(w, r, err)
		return
	}

	if WantsJSON(r) {
		WriteJSON(w, http.StatusOK, toSessionResponse(sess))
		return
	}
	if IsHTMX(r) {
		HTMX(w).Trigger(domainauth.EventLoginSuccess.String(), nil)
	}
	h.redirect(w, r, h.home.Path)
}

func (h *gateHandlers) credentials(w http.ResponseWriter, r *http.Request) (domainauth.Credentials, bool) {
	var creds domainauth.Credentials
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return creds, DecodeJSON(w, r, &creds)
	}
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return creds, false
	}
	creds.Username = r.PostForm.Get("username")
	creds.Password = r.PostForm.Get("password")
	return creds, true
}

func (h *gateHandlers) loginFailed(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := http.StatusBadGateway, "login_failed", "The sign-in service is unavailable."
	switch {
	case apperrors.IsValidation(err):
		status, code, msg = StatusForAppError(err), string(apperrors.GetCode(err)), err.Error()
	case apperrors.IsUnauthenticated(err):
		status, code, msg = StatusForAppError(err), string(apperrors.GetCode(err)), "Invalid username or password."
	default:
		h.logger.WarnContext(r.Context(), "login failed", slog.Any("error", err))
	}

	if WantsJSON(r) {
		WriteError(w, ErrorParams{Code: status, ErrCode: code, Err: errors.New(msg)})
		return
	}
	if IsHTMX(r) {
		HTMX(w).Trigger(domainauth.EventLoginFailed.String(), map[string]string{"message": msg})
	}
	h.render.Render(w, r, status, h.page(PageLogin, h.login, func(p *PageData) { p.Error = msg }))
}

// Logout ends the session. POST /logout.
// The local session is always cleared; a failed remote revoke is only logged.
func (h *gateHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		h.logger.WarnContext(r.Context(), "remote logout failed", slog.Any("error", err))
	}
	if WantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if IsHTMX(r) {
		HTMX(w).Trigger(domainauth.EventLogoutSuccess.String(), nil)
	}
	h.redirect(w, r, h.login.Path)
}

func (h *gateHandlers) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		HTMX(w).Redirect(target)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *gateHandlers) page(kind string, v service.View, opt func(*PageData)) PageData {
	p := PageData{
		Kind:    kind,
		Title:   v.Title,
		View:    v,
		Session: h.sessions.Snapshot(),
		Views:   h.views.Views(),
	}
	if opt != nil {
		opt(&p)
	}
	return p
}
