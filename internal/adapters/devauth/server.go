package devauth

// Package devauth is a config-driven stand-in for the remote application server,
// used for local development. It issues sessions for a fixed set of accounts and
// answers view API calls with the same 401/403/419 statuses the real server uses.

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	"github.com/target/mmk-ui-gate/internal/ports"
)

const (
	// CookieName is the session cookie set on a successful login.
	CookieName = "session_id"
	// SessionHeader names a session explicitly, for clients without cookies.
	SessionHeader = "X-Session-ID"

	defaultSessionTTL = 8 * time.Hour
)

// Account is a login the server accepts.
type Account struct {
	Username string
	Password string
	Role     domainauth.Role
}

// Config controls the dev server behavior.
// Accounts must be non-empty; Views may be empty, in which case every view is unknown.
type Config struct {
	Accounts   []Account
	Views      map[string]domainauth.NavigationRequirement
	SessionTTL time.Duration // default 8h when zero
}

// Server implements the authentication resource and a small view API.
type Server struct {
	accounts map[string]Account
	views    map[string]domainauth.NavigationRequirement
	ttl      time.Duration
	store    ports.SessionRecordStore
	logger   *slog.Logger
	now      func() time.Time
}

// ServerOptions groups dependencies for Server.
type ServerOptions struct {
	Config Config
	Store  ports.SessionRecordStore // Required
	Logger *slog.Logger
}

// NewServer validates cfg and builds a server.
func NewServer(opts ServerOptions) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("dev auth: session record store is required")
	}
	if len(opts.Config.Accounts) == 0 {
		return nil, errors.New("dev auth: at least one account is required")
	}

	accounts := make(map[string]Account, len(opts.Config.Accounts))
	for _, a := range opts.Config.Accounts {
		if a.Username == "" || a.Password == "" {
			return nil, errors.New("dev auth: account username and password are required")
		}
		if !a.Role.Valid() || a.Role == domainauth.RoleAll {
			return nil, fmt.Errorf("dev auth: account %q: %w: %q", a.Username, domainauth.ErrUnknownRole, string(a.Role))
		}
		if _, dup := accounts[a.Username]; dup {
			return nil, fmt.Errorf("dev auth: duplicate account %q", a.Username)
		}
		accounts[a.Username] = a
	}

	views := make(map[string]domainauth.NavigationRequirement, len(opts.Config.Views))
	for name, req := range opts.Config.Views {
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("dev auth: view %q: %w", name, err)
		}
		views[name] = req
	}

	ttl := opts.Config.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		accounts: accounts,
		views:    views,
		ttl:      ttl,
		store:    opts.Store,
		logger:   logger.With("component", "devauth"),
		now:      time.Now,
	}, nil
}

// Handler returns the server routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth", s.login)
	mux.HandleFunc("DELETE /auth", s.logout)
	mux.HandleFunc("GET /api/views/{name}", s.view)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

type loginResponse struct {
	ID     string          `json:"id"`
	UserID string          `json:"userid"`
	Role   domainauth.Role `json:"role"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds domainauth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	acct, ok := s.accounts[creds.Username]
	if !ok || subtle.ConstantTimeCompare([]byte(acct.Password), []byte(creds.Password)) != 1 {
		s.logger.InfoContext(r.Context(), "login rejected", "username", creds.Username)
		writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid username or password")
		return
	}

	rec := ports.SessionRecord{
		Session:   domainauth.Session{ID: uuid.NewString(), UserID: acct.Username, Role: acct.Role},
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.logger.ErrorContext(r.Context(), "save session record", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "could not create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    rec.Session.ID,
		Path:     "/",
		Expires:  rec.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.InfoContext(r.Context(), "session issued", "user_id", acct.Username, "role", acct.Role)
	writeJSON(w, http.StatusOK, loginResponse{ID: rec.Session.ID, UserID: rec.Session.UserID, Role: rec.Session.Role})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), rec.Session.ID); err != nil {
		s.logger.ErrorContext(r.Context(), "delete session record", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "could not end session")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	req, known := s.views[name]
	if !known {
		writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("view %q not found", name))
		return
	}

	var session domainauth.Session
	if !req.IsPublic() {
		rec, ok := s.requireSession(w, r)
		if !ok {
			return
		}
		session = rec.Session
		if !domainauth.IsAuthorized(req, session) {
			writeError(w, http.StatusForbidden, "forbidden", fmt.Sprintf("role %q may not open %q", session.Role, name))
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"view":   name,
		"user":   session.UserID,
		"role":   session.Role,
		"served": s.now().UTC().Format(time.RFC3339),
	})
}

// requireSession resolves the caller's session record. It writes 401 when the
// request names no session and 419 when the named session is unknown or expired.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) (ports.SessionRecord, bool) {
	id := sessionID(r)
	if id == "" {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "no session")
		return ports.SessionRecord{}, false
	}
	rec, err := s.store.Get(r.Context(), id)
	switch {
	case errors.Is(err, ports.ErrSessionRecordNotFound):
		writeError(w, domainauth.StatusSessionTimeout, "session_timeout", "session expired")
		return ports.SessionRecord{}, false
	case err != nil:
		s.logger.ErrorContext(r.Context(), "load session record", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "could not load session")
		return ports.SessionRecord{}, false
	}
	return rec, true
}

func sessionID(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return strings.TrimSpace(r.Header.Get(SessionHeader))
}

// Expire removes a session before its deadline, as an operator would.
func (s *Server) Expire(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, errCode, msg string) {
	writeJSON(w, code, map[string]string{"error": errCode, "message": msg})
}
