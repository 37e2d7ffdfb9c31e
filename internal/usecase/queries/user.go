package queries

import (
	"context"

	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound  = errs.New("user not found")
	ErrUserInactive  = errs.New("user inactive")
	ErrUserAccess    = errs.New("user access denied")
	ErrUserReadStore = errs.New("user read failed")
)

//go:generate mockgen -destination=../../../tests/mock/queries/user.go -package=queriesmock court-booking/internal/usecase/queries UserQueries
type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
	GetProfile(ctx context.Context, userID uuid.UUID, actor shared.Actor) (*UserView, error)
	List(ctx context.Context, actor shared.Actor) ([]*UserView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
	List(ctx context.Context) ([]*UserView, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
	}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	user, err := q.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, errs.MarkAll(errs.New("user is deactivated"), ErrUserInactive, errs.ErrForbidden)
	}

	return user, nil
}

func (q *userQueriesImpl) GetProfile(ctx context.Context, userID uuid.UUID, actor shared.Actor) (*UserView, error) {
	if !actor.CanAccess(userID) {
		return nil, errs.MarkAll(errs.New("profile belongs to another user"), ErrUserAccess, errs.ErrForbidden)
	}
	return q.find(ctx, userID)
}

func (q *userQueriesImpl) List(ctx context.Context, actor shared.Actor) ([]*UserView, error) {
	if !actor.IsAdmin() {
		return nil, errs.MarkAll(errs.New("admin only"), ErrUserAccess, errs.ErrForbidden)
	}

	users, err := q.readStore.List(ctx)
	if err != nil {
		return nil, errs.MarkAll(err, ErrUserReadStore, errs.ErrInfrastructure)
	}
	return users, nil
}

func (q *userQueriesImpl) find(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	user, err := q.readStore.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.MarkAll(err, ErrUserNotFound, errs.ErrNotFound)
		}
		return nil, errs.MarkAll(err, ErrUserReadStore, errs.ErrInfrastructure)
	}
	return user, nil
}
