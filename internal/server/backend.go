package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/team-roster-service/internal/config"
	"github.com/preston-bernstein/team-roster-service/internal/store"
)

// selectBackend opens the configured storage backend. Network backends are
// pinged before they are returned.
func selectBackend(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (store.Substrate, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	case config.BackendFile:
		fs, err := store.NewFSStore(cfg.FileDir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case config.BackendRedis:
		rs, err := store.NewRedisStore(ctx, store.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, err
		}
		return rs, nil
	case config.BackendPostgres:
		ps, err := store.NewPostgresStore(ctx, cfg.Postgres.DSN, cfg.Timeout, logger)
		if err != nil {
			return nil, err
		}
		return ps, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}
