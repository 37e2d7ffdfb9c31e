package queries

import (
	"context"

	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrCourtReadStore = errs.New("court read failed")

//go:generate mockgen -destination=../../../tests/mock/queries/court.go -package=queriesmock court-booking/internal/usecase/queries CourtQueries
type CourtQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*CourtView, error)
	List(ctx context.Context) ([]*CourtView, error)
}

type CourtReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CourtView, error)
	List(ctx context.Context) ([]*CourtView, error)
}

type courtQueriesImpl struct {
	readStore CourtReadStore
}

func NewCourtQueries(readStore CourtReadStore) CourtQueries {
	return &courtQueriesImpl{readStore: readStore}
}

func (q *courtQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CourtView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.MarkAll(err, ErrCourtNotFound, errs.ErrNotFound)
		}
		return nil, errs.MarkAll(err, ErrCourtReadStore, errs.ErrInfrastructure)
	}
	return view, nil
}

func (q *courtQueriesImpl) List(ctx context.Context) ([]*CourtView, error) {
	views, err := q.readStore.List(ctx)
	if err != nil {
		return nil, errs.MarkAll(err, ErrCourtReadStore, errs.ErrInfrastructure)
	}
	return views, nil
}
