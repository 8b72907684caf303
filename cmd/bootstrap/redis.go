package bootstrap

import (
	"context"
	"log/slog"

	"nest/internal/pkg/config"
	"nest/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) redis.UniversalClient {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Redis.Addr},
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return errs.Wrapf(err, "failed to ping redis at %s", cfg.Redis.Addr)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("closing redis client")
			return client.Close()
		},
	})

	return client
}
