package components

import (
	"nest/internal/domain/event"
	"nest/internal/infra/readstore"
	sqlc "nest/internal/infra/sqlc/generated"
	"nest/internal/infra/uow"
	"nest/internal/pkg/config"
	"nest/internal/usecase/commands"
	"nest/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Ledger
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.LedgerReadQueries)),
		),
		readstore.NewLedgerReadStore,
		func(s *readstore.LedgerReadStore) queries.LedgerReadStore { return s },
		fx.Annotate(
			readstore.NewBoundOrders,
			fx.As(new(event.OrderLookup)),
		),
		// Catalog
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.CatalogReadQueries)),
		),
		NewCatalogReadStore,
		func(s *readstore.CatalogReadStore) queries.CatalogReadStore { return s },
		func(s *readstore.CatalogReadStore) commands.CatalogCache { return s },
		func(s *readstore.CatalogReadStore) event.Catalog { return s },
		// Delivery
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.DeliveryReadQueries)),
		),
		fx.Annotate(
			readstore.NewDeliveryReadStore,
			fx.As(new(queries.DeliveryReadStore)),
		),
	),
)

var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

func NewCatalogReadStore(q readstore.CatalogReadQueries, db sqlc.DBTX, cfg config.Config) *readstore.CatalogReadStore {
	return readstore.NewCatalogReadStore(q, db, cfg.Catalog)
}
