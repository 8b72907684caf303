package bootstrap

import (
	"log/slog"

	"nest/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logEffectiveConfig),
)

// logEffectiveConfig records the tuning that changes pipeline behaviour.
// Secrets and connection strings are never logged.
func logEffectiveConfig(cfg config.Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		"unrecognized_policy", cfg.Webhook.UnrecognizedPolicy,
		"greenlight_enabled", cfg.Webhook.GreenlightEnabled,
		"workers", cfg.Worker.Count,
		"queue_size", cfg.Worker.QueueSize,
		"max_attempts", cfg.Worker.MaxAttempts,
		"lease_ttl", cfg.Lock.LeaseTTL,
		"catalog_dir", cfg.Catalog.DefinitionsDir,
	)
}
