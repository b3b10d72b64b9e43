package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/target/mmk-ui-gate/config"
	"github.com/target/mmk-ui-gate/internal/adapters/devauth"
	"golang.org/x/sync/errgroup"
)

// RunOptions contains what Run needs.
type RunOptions struct {
	Config *config.AppConfig // Required
	Logger *slog.Logger
}

// Run starts every enabled service and blocks until SIGINT/SIGTERM, ctx
// cancellation, or the first server failure. Servers are then shut down
// gracefully within HTTP_SHUTDOWN_TIMEOUT.
func Run(ctx context.Context, opts RunOptions) error {
	if opts.Config == nil {
		return errors.New("run: config is required")
	}
	if err := ValidateServiceConfig(opts.Config); err != nil {
		return err
	}
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	servers, cleanup, err := buildServers(ctx, cfg, logger)
	defer cleanup()
	if err != nil {
		return err
	}

	logger.Info("services starting", "services", GetEnabledServices(cfg))
	g, gctx := errgroup.WithContext(ctx)
	for _, sc := range servers {
		g.Go(func() error { return serve(gctx, sc) })
	}
	if err := g.Wait(); err != nil {
		logger.Error("service error", "error", err)
		return err
	}
	logger.Info("services stopped")
	return nil
}

// buildServers wires and binds every enabled service. The returned cleanup
// is always safe to call, even when an error is returned.
func buildServers(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) ([]serveConfig, func(), error) {
	var (
		servers  []serveConfig
		closers  []func()
		enabled  = map[config.ServiceMode]bool{}
		services = GetEnabledServices(cfg)
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	for _, s := range services {
		enabled[config.ServiceMode(s)] = true
	}

	bind := func(name, addr string, sc serveConfig) error {
		ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
		if err != nil {
			return fmt.Errorf("%s listen %s: %w", name, addr, err)
		}
		sc.Name = name
		sc.Listener = ln
		sc.ShutdownTimeout = cfg.HTTP.ShutdownTimeout
		sc.Logger = logger
		servers = append(servers, sc)
		closers = append(closers, func() { _ = ln.Close() })
		return nil
	}

	if enabled[config.ServiceModeDevAuth] {
		srv, err := buildDevAuthService(ctx, cfg, logger, &closers)
		if err != nil {
			return nil, cleanup, err
		}
		if err := bind("devauth", cfg.DevAuth.Addr, serveConfig{Server: newServer(srv.Handler(), cfg.DevAuth.Addr)}); err != nil {
			return nil, cleanup, err
		}
	}

	if enabled[config.ServiceModeGate] {
		metrics := buildObservability(logger, cfg.Observability, "gate")
		closers = append(closers, func() { _ = metrics.Close() })

		gate, err := BuildGate(GateOptions{Config: cfg, Logger: logger, Metrics: metrics})
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, gate.Close)
		if err := bind("gate", cfg.HTTP.Addr, serveConfig{Server: newServer(gate.Handler, cfg.HTTP.Addr)}); err != nil {
			return nil, cleanup, err
		}
	}

	return servers, cleanup, nil
}

func buildDevAuthService(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger, closers *[]func()) (*devauth.Server, error) {
	opts := DevAuthOptions{Config: cfg, Logger: logger}
	if cfg.DevAuth.Store == config.SessionStoreRedis {
		client, err := ConnectRedis(ctx, RedisOptions{Config: cfg.Redis, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("dev auth: %w", err)
		}
		*closers = append(*closers, func() { _ = client.Close() })
		opts.Redis = client
	}
	return BuildDevAuth(opts)
}
