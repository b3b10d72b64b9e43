package config

import (
	"log/slog"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - gate.go: declared views and the home/login view names
//   - remote.go: the remote server the gate talks to
//   - devauth.go: the development authentication endpoint
//   - redis.go: Redis connection for dev auth session records
//   - http.go: HTTP server configuration
//   - services.go: which processes run
type AppConfig struct {
	// LogLevel sets the minimum slog level (debug, info, warn, error).
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`

	// Service mode configuration
	Services string `env:"SERVICES" envDefault:"gate"`

	HTTP    HTTPConfig
	Gate    GateConfig
	Remote  RemoteConfig
	DevAuth DevAuthConfig

	Redis RedisConfig `envPrefix:"REDIS_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Gate.Sanitize()
	c.Remote.Sanitize()
	c.DevAuth.Sanitize()
	c.Observability.Sanitize()
}

// GetEnabledServices returns the enabled services based on the Services field.
func (c *AppConfig) GetEnabledServices() (map[ServiceMode]bool, error) {
	return ParseServices(c.Services)
}

// IsGateEnabled returns true if the local UI server is enabled.
func (c *AppConfig) IsGateEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeGate]
}

// IsDevAuthEnabled returns true if the development auth endpoint is enabled.
func (c *AppConfig) IsDevAuthEnabled() bool {
	services, err := c.GetEnabledServices()
	if err != nil {
		return false
	}
	return services[ServiceModeDevAuth]
}
