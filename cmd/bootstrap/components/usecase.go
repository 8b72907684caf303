package components

import (
	"context"
	"log/slog"

	"nest/internal/domain/event"
	"nest/internal/infra/catalogfile"
	"nest/internal/infra/lock"
	"nest/internal/pkg/clock"
	"nest/internal/pkg/config"
	"nest/internal/usecase"
	"nest/internal/usecase/commands"
	"nest/internal/usecase/queries"
	"nest/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	fx.Invoke(bootstrapCatalog),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		event.NewClassifier,
		fx.As(new(commands.EventClassifier)),
	),
	NewLockFactory,
	NewDefinitionSource,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewLedgerUseCase,
		NewIngestCommands,
		commands.NewCatalogUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		NewLedgerCache,
		queries.NewEntitlementQueries,
		queries.NewDeliveryQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewLockFactory(client redis.UniversalClient, cfg config.Config, clk clock.Clock, logger *slog.Logger) commands.LockFactory {
	return lock.NewFactory(lock.NewRedisLocker(client, clk), cfg.Lock, clk, logger)
}

func NewDefinitionSource(cfg config.Config, logger *slog.Logger) commands.ProductDefinitionSource {
	return catalogfile.NewLoader(cfg.Catalog.DefinitionsDir, logger)
}

func NewLedgerCache(cfg config.Config) *queries.LedgerCache {
	return queries.NewLedgerCache(cfg.Query)
}

func NewIngestCommands(
	uow shared.UnitOfWork,
	classifier commands.EventClassifier,
	ledger commands.LedgerCommands,
	locks commands.LockFactory,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) commands.IngestCommands {
	return commands.NewIngestUseCase(uow, classifier, ledger, locks, clk, cfg.Webhook, cfg.Worker, logger)
}

// bootstrapCatalog upserts product definitions before the server accepts
// events.
func bootstrapCatalog(lc fx.Lifecycle, catalog commands.CatalogCommands, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			res, err := catalog.Bootstrap(ctx)
			if err != nil {
				return err
			}
			logger.Info("product catalog bootstrapped", "products", res.Products)
			return nil
		},
	})
}
