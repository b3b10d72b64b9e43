package config

import (
	"strings"
	"time"
)

// RemoteConfig points the gate at the remote application server.
type RemoteConfig struct {
	BaseURL string        `env:"REMOTE_BASE_URL" envDefault:"http://127.0.0.1:8081"`
	Timeout time.Duration `env:"REMOTE_TIMEOUT"  envDefault:"10s"`

	// JMESPath expressions locating the session fields in the POST /auth response.
	SessionIDPath string `env:"REMOTE_SESSION_ID_PATH" envDefault:"id"`
	UserIDPath    string `env:"REMOTE_USER_ID_PATH"    envDefault:"userid"`
	RolePath      string `env:"REMOTE_ROLE_PATH"       envDefault:"role"`
}

// Sanitize trims values and restores defaults for blanks.
func (c *RemoteConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	c.SessionIDPath = orDefault(c.SessionIDPath, "id")
	c.UserIDPath = orDefault(c.UserIDPath, "userid")
	c.RolePath = orDefault(c.RolePath, "role")
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
