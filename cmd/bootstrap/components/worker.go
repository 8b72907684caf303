package components

import (
	"context"
	"log/slog"

	"nest/internal/handler/api"
	"nest/internal/infra/metrics"
	"nest/internal/pkg/config"
	"nest/internal/usecase/commands"
	"nest/internal/usecase/queries"
	"nest/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewWorkerPool,
		func(p *worker.Pool) api.Enqueuer { return p },
	),
)

// NewWorkerPool ties the pool to the application lifecycle. Workers outlive
// the start hook's context and stop with the application.
func NewWorkerPool(
	lc fx.Lifecycle,
	ingest commands.IngestCommands,
	deliveries queries.DeliveryQueries,
	cfg config.Config,
	m *metrics.Pipeline,
	logger *slog.Logger,
) *worker.Pool {
	pool := worker.NewPool(ingest, deliveries, cfg.Worker, m, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return pool.Start(context.WithoutCancel(ctx))
		},
		OnStop: func(ctx context.Context) error {
			return pool.Stop(ctx)
		},
	})

	return pool
}
