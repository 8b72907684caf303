package bootstrap

import (
	"nest/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	JWTModule,
	components.MetricsModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.WorkerModule,
	components.BridgeModule,
	components.HandlerModule,
)
