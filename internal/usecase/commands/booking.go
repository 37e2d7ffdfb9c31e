package commands

import (
	"context"

	"court-booking/internal/domain/booking"
	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/queries"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrMalformedDateTime      = errs.New("malformed date-time")
	ErrInvalidBooking         = errs.New("invalid booking")
	ErrBookingConflict        = errs.New("booking conflicts with an existing booking")
	ErrBookingNotFound        = errs.New("booking not found")
	ErrBookingAccess          = errs.New("booking access denied")
	ErrBookingAlreadyCanceled = errs.New("booking already canceled")
	ErrCourtNotFound          = errs.New("court not found")
	ErrBookingPersistence     = errs.New("booking persistence failed")
)

//go:generate mockgen -destination=../../../tests/mock/commands/booking.go -package=commandsmock court-booking/internal/usecase/commands BookingCommands
type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, actor shared.Actor) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) (*queries.BookingView, error)
	DeleteBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error
}

type bookingCommandsImpl struct {
	uow       shared.UnitOfWork
	services  *booking.Services
	readStore queries.BookingReadStore
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	services *booking.Services,
	readStore queries.BookingReadStore,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:       uow,
		services:  services,
		readStore: readStore,
	}
}

// CreateBooking runs the checks in a fixed order and stops at the first failure:
// parse and normalize, interval rules, then the overlap check under the court lock.
func (uc *bookingCommandsImpl) CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, actor shared.Actor) (*queries.BookingView, error) {
	start, err := uc.services.Civil.ParseDateTime(req.StartTime)
	if err != nil {
		return nil, errs.MarkAll(err, ErrMalformedDateTime, errs.ErrValidation)
	}
	end, err := uc.services.Civil.ParseDateTime(req.EndTime)
	if err != nil {
		return nil, errs.MarkAll(err, ErrMalformedDateTime, errs.ErrValidation)
	}

	ownerID := actor.ID
	if req.UserID != nil && *req.UserID != actor.ID {
		if !actor.IsAdmin() {
			return nil, errs.MarkAll(errs.New("only admins can book on behalf of another user"), ErrBookingAccess, errs.ErrForbidden)
		}
		ownerID = *req.UserID
	}

	b, err := booking.NewBooking(uc.services, req.CourtID, ownerID, start, end, req.PriceCents)
	if err != nil {
		return nil, errs.MarkAll(err, ErrInvalidBooking, errs.ErrValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().LockCourt(ctx, tx.DB(), b.CourtID()); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.MarkAll(err, ErrCourtNotFound, errs.ErrNotFound)
			}
			return errs.MarkAll(err, ErrBookingPersistence, errs.ErrInfrastructure)
		}

		overlapping, err := tx.Bookings().FindOverlapping(ctx, tx.DB(), b.CourtID(), b.TimeSlot().Start(), b.TimeSlot().End(), booking.StatusActive)
		if err != nil {
			return errs.MarkAll(err, ErrBookingPersistence, errs.ErrInfrastructure)
		}
		if len(overlapping) > 0 {
			return errs.MarkAll(booking.ErrSlotOccupied, ErrBookingConflict, errs.ErrConflict)
		}

		if _, err := tx.Bookings().Insert(ctx, tx.DB(), b); err != nil {
			return mapInsertBookingErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.loadView(ctx, b.ID())
}

func (uc *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) (*queries.BookingView, error) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, tx.DB(), bookingID)
		if err != nil {
			return mapFindBookingErr(err)
		}
		if !actor.CanAccess(b.UserID()) {
			return errs.MarkAll(errs.New("booking belongs to another user"), ErrBookingAccess, errs.ErrForbidden)
		}
		if err := b.Cancel(); err != nil {
			return errs.MarkAll(err, ErrBookingAlreadyCanceled, errs.ErrConflict)
		}
		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), b); err != nil {
			return mapFindBookingErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.loadView(ctx, bookingID)
}

func (uc *bookingCommandsImpl) DeleteBooking(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) error {
	if !actor.IsAdmin() {
		return errs.MarkAll(errs.New("only admins can delete bookings"), ErrBookingAccess, errs.ErrForbidden)
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().Delete(ctx, tx.DB(), bookingID); err != nil {
			return mapFindBookingErr(err)
		}
		return nil
	})
}

func (uc *bookingCommandsImpl) loadView(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := uc.readStore.FindByID(ctx, id)
	if err != nil {
		return nil, errs.MarkAll(err, ErrBookingPersistence, errs.ErrInfrastructure)
	}
	return view, nil
}

func mapInsertBookingErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindConflict):
		// lost the race against a concurrent insert; the exclusion constraint decided
		return errs.MarkAll(err, booking.ErrSlotOccupied, ErrBookingConflict, errs.ErrConflict)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		if infra.ConstraintName(err) == "bookings_court_id_fkey" {
			return errs.MarkAll(err, ErrCourtNotFound, errs.ErrNotFound)
		}
		return errs.MarkAll(err, ErrUserNotFound, errs.ErrNotFound)
	default:
		return errs.MarkAll(err, ErrBookingPersistence, errs.ErrInfrastructure)
	}
}

func mapFindBookingErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.MarkAll(err, ErrBookingNotFound, errs.ErrNotFound)
	}
	return errs.MarkAll(err, ErrBookingPersistence, errs.ErrInfrastructure)
}
