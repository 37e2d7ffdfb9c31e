package commands

import (
	"context"

	"court-booking/internal/domain/user"
	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrProfileAccess = errs.New("profile access denied")

//go:generate mockgen -destination=../../../tests/mock/commands/profile.go -package=commandsmock court-booking/internal/usecase/commands ProfileCommands
type ProfileCommands interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, req reqdto.UpdateProfileRequest, actor shared.Actor) (*queries.UserView, error)
}

type profileCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.UserReadStore
	clock     clock.Clock
}

func NewProfileCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, clk clock.Clock) ProfileCommands {
	return &profileCommandsImpl{
		uow:       uow,
		readStore: readStore,
		clock:     clk,
	}
}

func (uc *profileCommandsImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req reqdto.UpdateProfileRequest, actor shared.Actor) (*queries.UserView, error) {
	if !actor.CanAccess(userID) {
		return nil, errs.MarkAll(errs.New("profile belongs to another user"), ErrProfileAccess, errs.ErrForbidden)
	}

	patch, err := toProfilePatch(req, uc.clock)
	if err != nil {
		return nil, errs.MarkAll(err, ErrInvalidUserData, errs.ErrValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByID(ctx, tx.DB(), userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.MarkAll(err, ErrUserNotFound, errs.ErrNotFound)
			}
			return errs.MarkAll(err, ErrUserPersistence, errs.ErrInfrastructure)
		}

		u.ApplyProfile(patch)

		if err := tx.Users().UpdateProfile(ctx, tx.DB(), u); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.MarkAll(err, ErrUserAlreadyExists, errs.ErrConflict)
			}
			return errs.MarkAll(err, ErrUserPersistence, errs.ErrInfrastructure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := uc.readStore.FindByID(ctx, userID)
	if err != nil {
		return nil, errs.MarkAll(err, ErrUserPersistence, errs.ErrInfrastructure)
	}
	return view, nil
}

func toProfilePatch(req reqdto.UpdateProfileRequest, clk clock.Clock) (user.ProfilePatch, error) {
	var p user.ProfilePatch
	if req.Email != nil {
		email, err := user.NewEmail(*req.Email)
		if err != nil {
			return p, err
		}
		p.Email = &email
	}
	if req.FirstName != nil {
		name, err := user.NewName(*req.FirstName)
		if err != nil {
			return p, err
		}
		p.FirstName = &name
	}
	if req.LastName != nil {
		name, err := user.NewName(*req.LastName)
		if err != nil {
			return p, err
		}
		p.LastName = &name
	}
	if req.BirthDate != nil {
		b, err := user.ParseBirthDate(*req.BirthDate, clk.Now())
		if err != nil {
			return p, err
		}
		p.BirthDate = &b
	}
	if req.Phone != nil {
		phone, err := user.NewPhone(*req.Phone)
		if err != nil {
			return p, err
		}
		p.Phone = &phone
	}
	p.Photo = req.Photo
	return p, nil
}
