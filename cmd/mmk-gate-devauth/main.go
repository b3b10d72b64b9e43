// Command mmk-gate-devauth runs only the development authentication endpoint.
// It exists for local work against mmk-gate; never expose it to real users.
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
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
	cfg.Services = string(config.ServiceModeDevAuth)

	logger := bootstrap.InitLogger(cfg.LogLevel)
	logger.InfoContext(ctx, "starting dev auth endpoint",
		"addr", cfg.DevAuth.Addr,
		"accounts", len(cfg.DevAuth.Accounts),
		"store", cfg.DevAuth.Store,
	)
	if err := bootstrap.Run(ctx, bootstrap.RunOptions{Config: &cfg, Logger: logger}); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}
