package components

import (
	"court-booking/internal/domain/auth"
	"court-booking/internal/domain/booking"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase"
	"court-booking/internal/usecase/commands"
	"court-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewCivil,
	NewOperatingHours,
	fx.Annotate(
		NewPriceCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
	fx.Annotate(
		auth.NewRandomCodeGenerator,
		fx.As(new(auth.CodeGenerator)),
	),
	func(clock clock.Clock, civil clock.Civil, calc booking.PriceCalculator) *booking.Services {
		return &booking.Services{
			Clock:           clock,
			Civil:           civil,
			PriceCalculator: calc,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewCourtCommands,
		commands.NewProfileCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewCourtQueries,
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewCivil(cfg config.Config) (clock.Civil, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return clock.Civil{}, err
	}
	return clock.NewCivil(loc), nil
}

func NewOperatingHours(cfg config.Config) (booking.OperatingHours, error) {
	return booking.NewOperatingHours(cfg.Booking.OpenHour, cfg.Booking.CloseHour)
}

func NewPriceCalculator(cfg config.Config) *booking.DefaultPriceCalculator {
	return booking.NewDefaultPriceCalculator(cfg.Booking.HourlyRateCents)
}
