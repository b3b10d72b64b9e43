package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/target/mmk-ui-gate/config"
	"github.com/target/mmk-ui-gate/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		slog.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger := bootstrap.InitLogger(cfg.LogLevel)
	logStartupInfo(ctx, logger, &cfg)

	return bootstrap.Run(ctx, bootstrap.RunOptions{Config: &cfg, Logger: logger})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting mmk-gate",
		"services", bootstrap.GetEnabledServices(cfg),
		"http_addr", cfg.HTTP.Addr,
		"remote", cfg.Remote.BaseURL,
		"views", len(cfg.Gate.Views),
		"metrics_enabled", cfg.Observability.Metrics.IsEnabled(),
	)
}
