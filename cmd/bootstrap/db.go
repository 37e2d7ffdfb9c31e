package bootstrap

import (
	"context"

	"court-booking/internal/infra/db"
	"court-booking/internal/infra/migrations"
	"court-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
	fx.Invoke(RunMigrations),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

// RunMigrations applies pending migrations on startup unless MIGRATION_AUTO=false.
func RunMigrations(lc fx.Lifecycle, cfg config.Config, pool *pgxpool.Pool) {
	if !cfg.Migration.AutoMigrate {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			migrator, err := migrations.NewMigrator(pool)
			if err != nil {
				return err
			}
			defer migrator.Close()
			return migrator.Up(ctx)
		},
	})
}
