package components

import (
	"context"
	"log/slog"

	"nest/internal/infra/metrics"
	"nest/internal/infra/notify"
	"nest/internal/infra/readstore"
	"nest/internal/pkg/config"
	"nest/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var BridgeModule = fx.Module("bridge",
	fx.Provide(
		NewBridge,
	),
	fx.Invoke(
		subscribeInvalidation,
		runBridge,
	),
)

func NewBridge(pool *pgxpool.Pool, cfg config.Config, logger *slog.Logger) *notify.Bridge {
	return notify.NewBridge(notify.NewPoolConnector(pool), cfg.Bridge, logger)
}

// subscribeInvalidation drops cached ledgers and catalog snapshots when the
// store reports a change. A redelivered or unreadable entitlement
// notification drops every cached ledger.
func subscribeInvalidation(
	bridge *notify.Bridge,
	cache *queries.LedgerCache,
	catalog *readstore.CatalogReadStore,
	cfg config.Config,
	m *metrics.Pipeline,
	logger *slog.Logger,
) error {
	if _, err := bridge.Subscribe(cfg.Bridge.Channel, func(_ context.Context, n notify.Notification) {
		m.Notification(n.Channel)
		change, err := notify.ParseEntityChange(n.Payload)
		if err != nil {
			logger.Warn("unreadable entitlement notification", "error", err.Error())
			cache.InvalidateAll()
			return
		}
		if n.Redelivered || change.UserID == uuid.Nil {
			cache.InvalidateAll()
			return
		}
		cache.InvalidateUser(change.UserID)
	}); err != nil {
		return err
	}

	_, err := bridge.Subscribe(cfg.Bridge.CatalogChannel, func(_ context.Context, n notify.Notification) {
		m.Notification(n.Channel)
		catalog.Invalidate()
	})
	return err
}

func runBridge(lc fx.Lifecycle, bridge *notify.Bridge, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				if err := bridge.Run(ctx); err != nil {
					logger.Error("notification bridge stopped", "error", err.Error())
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
