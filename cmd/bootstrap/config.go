package bootstrap

import (
	"context"
	"log/slog"

	"court-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logBookingSettings),
)

// logBookingSettings reports the effective schedule once logging is configured.
func logBookingSettings(lc fx.Lifecycle, cfg config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			slog.Info("予約設定",
				"timezone", cfg.Booking.TimeZone,
				"open_hour", cfg.Booking.OpenHour,
				"close_hour", cfg.Booking.CloseHour,
				"hourly_rate_cents", cfg.Booking.HourlyRateCents,
				"sms_enabled", cfg.SMS.Enabled,
				"auto_migrate", cfg.Migration.AutoMigrate,
			)
			return nil
		},
	})
}
