package bootstrap

import (
	"court-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	SMSModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
