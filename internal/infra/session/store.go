// Package session provides the key-value stores behind browser sessions.
package session

import (
	"context"
	"log/slog"

	"cookbook/config"
	"cookbook/internal/domain/lifecycle"
	"cookbook/internal/domain/repository"
	"cookbook/internal/errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
)

const defaultMemoryCapacity = 10000

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewStore selects the session backend named by session.store.
func NewStore(params Params) (repository.SessionStore, error) {
	cfg := params.Config.Session

	switch cfg.Store {
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     params.Config.Redis.Addr,
			Password: params.Config.Redis.Password,
			DB:       params.Config.Redis.DB,
		})

		params.Append(fx.Hook{
			OnStart: func(startCtx context.Context) error {
				ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
				defer cancel()

				if err := client.Ping(ctx).Err(); err != nil {
					return errors.Wrap(err, "failed to ping Redis")
				}

				params.Logger.Info("Redis session store connected", slog.String("addr", params.Config.Redis.Addr))

				return nil
			},
			OnStop: func(context.Context) error {
				return errors.WithStack(client.Close())
			},
		})

		return NewRedisStore(client, cfg.TTL), nil

	case config.SessionStoreMemory:
		capacity := cfg.MemoryCapacity
		if capacity <= 0 {
			capacity = defaultMemoryCapacity
		}
		params.Logger.Info("Using in-memory session store", slog.Int("capacity", capacity))

		return NewMemoryStore(capacity, cfg.TTL), nil

	default:
		return nil, errors.Errorf("unknown session store %q", cfg.Store)
	}
}
