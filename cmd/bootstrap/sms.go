package bootstrap

import (
	"log/slog"

	"court-booking/internal/infra/sms"
	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var SMSModule = fx.Module("sms",
	fx.Provide(
		NewSMSSender,
	),
)

func NewSMSSender(cfg config.Config) commands.SMSSender {
	if !cfg.SMS.Enabled {
		slog.Warn("SMS delivery is disabled; verification codes are written to the log")
		return sms.NewLogSender()
	}
	return sms.NewP1SMSClient(cfg.SMS)
}
