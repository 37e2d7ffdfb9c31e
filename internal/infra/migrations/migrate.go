package migrations

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"

	"court-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

// Migrator applies the embedded goose migrations through a pgx pool.
type Migrator struct {
	db *sql.DB
}

func NewMigrator(pool *pgxpool.Pool) (*Migrator, error) {
	goose.SetBaseFS(files)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, errs.Wrap(err, "set goose dialect")
	}
	return &Migrator{db: stdlib.OpenDBFromPool(pool)}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	slog.Info("applying database migrations")
	if err := goose.UpContext(ctx, m.db, dir); err != nil {
		return errs.Wrap(err, "apply migrations")
	}

	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "version", version)
	return nil
}

func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, errs.Wrap(err, "get migration version")
	}
	return version, nil
}

// Close releases the sql.DB wrapper; the pool itself is owned by the caller.
func (m *Migrator) Close() error {
	return m.db.Close()
}
