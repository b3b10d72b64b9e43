package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

func newServer(handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// serveConfig describes one HTTP server run by serve.
type serveConfig struct {
	Name            string
	Server          *http.Server
	Listener        net.Listener
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// serve runs the server until ctx is cancelled, then shuts it down
// gracefully. It returns early with the serve error if the server fails.
func serve(ctx context.Context, cfg serveConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("server", cfg.Name)

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		logger.Info("starting HTTP server", "addr", cfg.Listener.Addr().String())
		if err := cfg.Server.Serve(cfg.Listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err, failed := <-errCh:
		if failed {
			return fmt.Errorf("%s server: %w", cfg.Name, err)
		}
		return nil
	case <-ctx.Done():
	}

	return shutdownServer(cfg, logger)
}

func shutdownServer(cfg serveConfig, logger *slog.Logger) error {
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger.Info("shutting down HTTP server")

	// The parent context is already done; shutdown gets a fresh deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s server shutdown: %w", cfg.Name, err)
	}

	logger.Info("HTTP server stopped")
	return nil
}
