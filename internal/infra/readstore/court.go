package readstore

import (
	"context"

	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	findCourtByIDSQL = `SELECT id, name, description, created_at FROM courts WHERE id = $1`
	listCourtsSQL    = `SELECT id, name, description, created_at FROM courts ORDER BY name`
)

type CourtReadStore struct {
	db db.DBTX
}

func NewCourtReadStore(db db.DBTX) *CourtReadStore {
	return &CourtReadStore{db: db}
}

func (r *CourtReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CourtView, error) {
	view, err := scanCourtView(r.db.QueryRow(ctx, findCourtByIDSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find court by ID", err)
	}
	return view, nil
}

func (r *CourtReadStore) List(ctx context.Context) ([]*queries.CourtView, error) {
	rows, err := r.db.Query(ctx, listCourtsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list courts", err)
	}
	defer rows.Close()

	result := []*queries.CourtView{}
	for rows.Next() {
		view, err := scanCourtView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan court", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate courts", err)
	}
	return result, nil
}

func scanCourtView(row pgx.Row) (*queries.CourtView, error) {
	var (
		v         queries.CourtView
		desc      pgtype.Text
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&v.ID, &v.Name, &desc, &createdAt); err != nil {
		return nil, err
	}
	v.Description = pgconv.StringPtrFromPgtype(desc)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &v, nil
}
