package bootstrap

import (
	"log/slog"

	"github.com/target/mmk-ui-gate/config"
	"github.com/target/mmk-ui-gate/internal/observability/statsd"
)

// buildObservability returns the metrics client. A collector that cannot be
// reached is logged and replaced by a disabled client so the gate still starts.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig, service string) *statsd.Client {
	if logger == nil {
		logger = slog.Default()
	}

	statsCfg := statsd.Config{
		Enabled:    cfg.Metrics.IsEnabled(),
		Address:    cfg.Metrics.StatsdAddress,
		Prefix:     cfg.Metrics.Prefix,
		Logger:     logger,
		GlobalTags: map[string]string{"service": service},
	}
	client, err := statsd.NewClient(statsCfg)
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		statsCfg.Enabled = false
		client, _ = statsd.NewClient(statsCfg)
	}
	return client
}
