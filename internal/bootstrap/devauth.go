package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/mmk-ui-gate/config"
	"github.com/target/mmk-ui-gate/internal/adapters/devauth"
	"github.com/target/mmk-ui-gate/internal/adapters/memory"
	redisadapter "github.com/target/mmk-ui-gate/internal/adapters/redis"
	"github.com/target/mmk-ui-gate/internal/ports"
)

// DevAuthOptions contains what BuildDevAuth needs.
type DevAuthOptions struct {
	Config *config.AppConfig // Required
	// Redis is required when DEV_AUTH_STORE=redis.
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// BuildDevAuth wires the development authentication endpoint and its session record store.
func BuildDevAuth(opts DevAuthOptions) (*devauth.Server, error) {
	if opts.Config == nil {
		return nil, errors.New("dev auth: config is required")
	}
	cfg := opts.Config

	store, err := newSessionRecordStore(cfg, opts.Redis)
	if err != nil {
		return nil, err
	}

	accounts := make([]devauth.Account, 0, len(cfg.DevAuth.Accounts))
	for _, a := range cfg.DevAuth.Accounts {
		accounts = append(accounts, devauth.Account{Username: a.Username, Password: a.Password, Role: a.Role})
	}

	srv, err := devauth.NewServer(devauth.ServerOptions{
		Config: devauth.Config{
			Accounts:   accounts,
			Views:      cfg.DevAuth.Views.Requirements(),
			SessionTTL: cfg.DevAuth.SessionTTL,
		},
		Store:  store,
		Logger: opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build dev auth: %w", err)
	}
	return srv, nil
}

//nolint:ireturn // the store kind is chosen by configuration.
func newSessionRecordStore(cfg *config.AppConfig, client redis.UniversalClient) (ports.SessionRecordStore, error) {
	switch cfg.DevAuth.Store {
	case config.SessionStoreRedis:
		if client == nil {
			return nil, errors.New("dev auth: redis store selected but no redis client configured")
		}
		if cfg.Redis.KeyPrefix == "" {
			return redisadapter.NewSessionRecordStore(client), nil
		}
		return redisadapter.NewSessionRecordStoreWithPrefix(client, cfg.Redis.KeyPrefix), nil
	case config.SessionStoreMemory, "":
		return memory.NewSessionRecordStore(time.Now), nil
	default:
		return nil, fmt.Errorf("dev auth: unknown session store %q", cfg.DevAuth.Store)
	}
}
