package repository

import (
	"context"

	"court-booking/internal/domain/court"
	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertCourtSQL = `
	INSERT INTO courts (id, name, description)
	VALUES ($1, $2, $3)
	RETURNING created_at`

type CourtRepository struct{}

func NewCourtRepository() *CourtRepository {
	return &CourtRepository{}
}

func (r *CourtRepository) Create(ctx context.Context, tx db.DBTX, c *court.Court) (*court.Court, error) {
	var createdAt pgtype.Timestamptz
	err := tx.QueryRow(ctx, insertCourtSQL, c.ID(), c.Name(), pgconv.StringPtrToPgtype(c.Description())).
		Scan(&createdAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create court", err)
	}
	return court.ReconstructCourt(c.ID(), c.Name(), c.Description(), pgconv.TimeFromPgtype(createdAt)), nil
}
