package commands

import (
	"context"

	"court-booking/internal/domain/court"
	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"
)

var (
	ErrInvalidCourt     = errs.New("invalid court")
	ErrCourtNameTaken   = errs.New("court name already taken")
	ErrCourtAccess      = errs.New("court access denied")
	ErrCourtPersistence = errs.New("court persistence failed")
)

//go:generate mockgen -destination=../../../tests/mock/commands/court.go -package=commandsmock court-booking/internal/usecase/commands CourtCommands
type CourtCommands interface {
	CreateCourt(ctx context.Context, req reqdto.CreateCourtRequest, actor shared.Actor) (*court.Court, error)
}

type courtCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewCourtCommands(uow shared.UnitOfWork) CourtCommands {
	return &courtCommandsImpl{uow: uow}
}

func (uc *courtCommandsImpl) CreateCourt(ctx context.Context, req reqdto.CreateCourtRequest, actor shared.Actor) (*court.Court, error) {
	if !actor.IsAdmin() {
		return nil, errs.MarkAll(errs.New("only admins can create courts"), ErrCourtAccess, errs.ErrForbidden)
	}

	c, err := court.NewCourt(req.Name, req.Description)
	if err != nil {
		return nil, errs.MarkAll(err, ErrInvalidCourt, errs.ErrValidation)
	}

	var created *court.Court
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		created, err = tx.Courts().Create(ctx, tx.DB(), c)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.MarkAll(err, ErrCourtNameTaken, errs.ErrConflict)
			}
			return errs.MarkAll(err, ErrCourtPersistence, errs.ErrInfrastructure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
