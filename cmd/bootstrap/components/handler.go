package components

import (
	"context"
	"log/slog"

	"nest/internal/handler"
	"nest/internal/handler/api"
	"nest/internal/handler/middleware"
	"nest/internal/infra/greenlight"
	"nest/internal/infra/metrics"
	"nest/internal/pkg/config"
	"nest/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewWebhookHandler,
		api.NewEntitlementHandler,
		api.NewDeliveryHandler,
		middleware.NewAuthMiddleware,
		NewGreenlightFlag,
		func(f *greenlight.Flag) middleware.Gate { return f },
		NewGreenlightHandler,
		NewHealthChecks,
	),
	fx.Invoke(NewRouter),
)

func NewWebhookHandler(
	ingest commands.IngestCommands,
	queue api.Enqueuer,
	m *metrics.Pipeline,
	cfg config.Config,
	logger *slog.Logger,
) *api.WebhookHandler {
	return api.NewWebhookHandler(ingest, queue, m, cfg.Webhook, logger)
}

func NewGreenlightFlag(client redis.UniversalClient, cfg config.Config) *greenlight.Flag {
	return greenlight.NewFlag(client, cfg.Webhook.GreenlightKey)
}

func NewGreenlightHandler(flag *greenlight.Flag, cfg config.Config, logger *slog.Logger) *api.GreenlightHandler {
	return api.NewGreenlightHandler(flag, cfg.Webhook.GreenlightEnabled, logger)
}

func NewHealthChecks(pool *pgxpool.Pool, client redis.UniversalClient) map[string]handler.HealthCheck {
	return map[string]handler.HealthCheck{
		"database": pool.Ping,
		"redis": func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}

type routerIn struct {
	fx.In

	Engine      *gin.Engine
	Config      config.Config
	Logger      *middleware.Logger
	Auth        *middleware.AuthMiddleware
	Gate        middleware.Gate
	Gatherer    prometheus.Gatherer
	Checks      map[string]handler.HealthCheck
	Webhook     *api.WebhookHandler
	Entitlement *api.EntitlementHandler
	Delivery    *api.DeliveryHandler
	Greenlight  *api.GreenlightHandler
}

func NewRouter(in routerIn) {
	handler.NewRouter(in.Engine, handler.RouterParams{
		Config:   in.Config,
		Logger:   in.Logger,
		Auth:     in.Auth,
		Gate:     in.Gate,
		Gatherer: in.Gatherer,
		Checks:   in.Checks,
		Handlers: handler.Handlers{
			Webhook:     in.Webhook,
			Entitlement: in.Entitlement,
			Delivery:    in.Delivery,
			Greenlight:  in.Greenlight,
		},
	})
}
