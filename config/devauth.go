package config

import (
	"fmt"
	"strings"
	"time"

	domainauth "github.com/target/mmk-ui-gate/internal/domain/auth"
	apperrors "github.com/target/mmk-ui-gate/internal/errors"
)

// SessionStoreKind selects where the dev auth endpoint keeps session records.
type SessionStoreKind string

const (
	SessionStoreMemory SessionStoreKind = "memory"
	SessionStoreRedis  SessionStoreKind = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch SessionStoreKind(v) {
	case SessionStoreMemory, SessionStoreRedis:
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreKind: %q (valid options: memory, redis)", v)
	}
}

// DevAuthConfig controls the development authentication endpoint.
// Used when SERVICES includes devauth; never enable it against real users.
type DevAuthConfig struct {
	Addr       string           `env:"DEV_AUTH_ADDR"        envDefault:"127.0.0.1:8081"`
	Accounts   DevAccounts      `env:"DEV_AUTH_ACCOUNTS"    envDefault:"admin:admin:admin;editor:editor:editor;guest:guest:guest"`
	SessionTTL time.Duration    `env:"DEV_AUTH_SESSION_TTL" envDefault:"8h"`
	Views      ViewSpecs        `env:"DEV_AUTH_VIEWS"       envDefault:"dashboard|/dashboard|admin,editor|Dashboard;login|/login|*|Sign in"`
	Store      SessionStoreKind `env:"DEV_AUTH_STORE"       envDefault:"memory"`
}

// Sanitize applies guardrails to dev auth values.
func (c *DevAuthConfig) Sanitize() {
	c.Addr = strings.TrimSpace(c.Addr)
	if c.SessionTTL <= 0 {
		c.SessionTTL = 8 * time.Hour
	}
	if c.Store == "" {
		c.Store = SessionStoreMemory
	}
}

// DevAccount is one login accepted by the dev endpoint.
type DevAccount struct {
	Username string
	Password string
	Role     domainauth.Role
}

// DevAccounts is written as "user:password:role;user:password:role".
type DevAccounts []DevAccount

// UnmarshalText implements encoding.TextUnmarshaler for DevAccounts.
func (a *DevAccounts) UnmarshalText(text []byte) error {
	var out []DevAccount
	for _, entry := range strings.Split(string(text), ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			return apperrors.Configurationf("dev account %q: want user:password:role", redactAccount(entry))
		}
		role, err := domainauth.ParseRole(parts[2])
		if err != nil {
			return apperrors.Wrapf(err, apperrors.ErrCodeConfiguration, "dev account %q", parts[0])
		}
		if role == domainauth.RoleAll {
			return apperrors.Configurationf("dev account %q: the wildcard is not an actor role", parts[0])
		}
		out = append(out, DevAccount{Username: parts[0], Password: parts[1], Role: role})
	}
	*a = out
	return nil
}

func redactAccount(entry string) string {
	user, _, found := strings.Cut(entry, ":")
	if !found {
		return entry
	}
	return user + ":***"
}
