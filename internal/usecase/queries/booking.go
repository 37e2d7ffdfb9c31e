package queries

import (
	"context"
	"strings"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/user"
	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/errs"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound  = errs.New("booking not found")
	ErrBookingAccess    = errs.New("booking access denied")
	ErrCourtNotFound    = errs.New("court not found")
	ErrMalformedDate    = errs.New("malformed date")
	ErrMalformedID      = errs.New("malformed id")
	ErrBookingReadStore = errs.New("booking read failed")
)

//go:generate mockgen -destination=../../../tests/mock/queries/booking.go -package=queriesmock court-booking/internal/usecase/queries BookingQueries
type BookingQueries interface {
	// GetAvailability is public; actor is nil for anonymous callers.
	GetAvailability(ctx context.Context, req reqdto.AvailabilityRequest, actor *shared.Actor) (*AvailabilityView, error)
	GetByID(ctx context.Context, id uuid.UUID, actor shared.Actor) (*BookingView, error)
	ListForUser(ctx context.Context, userID uuid.UUID, actor shared.Actor) ([]*BookingView, error)
	ListAll(ctx context.Context, actor shared.Actor) ([]*BookingView, error)
	Filter(ctx context.Context, req reqdto.BookingFilterRequest, actor shared.Actor) ([]*BookingView, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByCourtAndDay(ctx context.Context, courtID uuid.UUID, day time.Time) ([]DayBooking, error)
	List(ctx context.Context, filter BookingFilter) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	readStore      BookingReadStore
	courtReadStore CourtReadStore
	civil          clock.Civil
	hours          booking.OperatingHours
}

func NewBookingQueries(
	readStore BookingReadStore,
	courtReadStore CourtReadStore,
	civil clock.Civil,
	hours booking.OperatingHours,
) BookingQueries {
	return &bookingQueriesImpl{
		readStore:      readStore,
		courtReadStore: courtReadStore,
		civil:          civil,
		hours:          hours,
	}
}

func (q *bookingQueriesImpl) GetAvailability(ctx context.Context, req reqdto.AvailabilityRequest, actor *shared.Actor) (*AvailabilityView, error) {
	courtID, err := uuid.Parse(req.CourtID)
	if err != nil {
		return nil, errs.MarkAll(err, ErrMalformedID, errs.ErrValidation)
	}
	day, err := q.civil.ParseDate(req.Date)
	if err != nil {
		return nil, errs.MarkAll(err, ErrMalformedDate, errs.ErrValidation)
	}

	if _, err := q.courtReadStore.FindByID(ctx, courtID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.MarkAll(err, ErrCourtNotFound, errs.ErrNotFound)
		}
		return nil, errs.MarkAll(err, ErrBookingReadStore, errs.ErrInfrastructure)
	}

	dayBookings, err := q.readStore.FindByCourtAndDay(ctx, courtID, day)
	if err != nil {
		return nil, errs.MarkAll(err, ErrBookingReadStore, errs.ErrInfrastructure)
	}

	occupied := make([]booking.Occupancy, 0, len(dayBookings))
	for _, b := range dayBookings {
		occupied = append(occupied, booking.Occupancy{
			Start:     b.StartTime,
			End:       b.EndTime,
			OwnerName: user.DisplayName(b.FirstName, b.LastName),
		})
	}

	privileged := actor != nil && actor.IsAdmin()
	slots := booking.BuildAvailability(day, q.hours, occupied, privileged)

	views := make([]SlotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, SlotView{
			Start:        s.StartLabel(),
			End:          s.EndLabel(),
			IsBooked:     s.IsBooked,
			OccupantName: s.OccupantName,
		})
	}

	return &AvailabilityView{
		CourtID: courtID,
		Date:    day.Format(clock.DateLayout),
		Slots:   views,
	}, nil
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor shared.Actor) (*BookingView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.MarkAll(err, ErrBookingNotFound, errs.ErrNotFound)
		}
		return nil, errs.MarkAll(err, ErrBookingReadStore, errs.ErrInfrastructure)
	}

	if !actor.CanAccess(view.UserID) {
		return nil, errs.MarkAll(errs.New("booking belongs to another user"), ErrBookingAccess, errs.ErrForbidden)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListForUser(ctx context.Context, userID uuid.UUID, actor shared.Actor) ([]*BookingView, error) {
	if !actor.CanAccess(userID) {
		return nil, errs.MarkAll(errs.New("bookings of another user requested"), ErrBookingAccess, errs.ErrForbidden)
	}
	return q.list(ctx, BookingFilter{UserIDs: []uuid.UUID{userID}})
}

func (q *bookingQueriesImpl) ListAll(ctx context.Context, actor shared.Actor) ([]*BookingView, error) {
	if !actor.IsAdmin() {
		return nil, errs.MarkAll(errs.New("admin only"), ErrBookingAccess, errs.ErrForbidden)
	}
	return q.list(ctx, BookingFilter{})
}

func (q *bookingQueriesImpl) Filter(ctx context.Context, req reqdto.BookingFilterRequest, actor shared.Actor) ([]*BookingView, error) {
	if !actor.IsAdmin() {
		return nil, errs.MarkAll(errs.New("admin only"), ErrBookingAccess, errs.ErrForbidden)
	}

	filter, err := q.toFilter(req)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	return q.list(ctx, filter)
}

func (q *bookingQueriesImpl) list(ctx context.Context, filter BookingFilter) ([]*BookingView, error) {
	views, err := q.readStore.List(ctx, filter)
	if err != nil {
		return nil, errs.MarkAll(err, ErrBookingReadStore, errs.ErrInfrastructure)
	}
	return views, nil
}

func (q *bookingQueriesImpl) toFilter(req reqdto.BookingFilterRequest) (BookingFilter, error) {
	var f BookingFilter
	if req.DateFrom != nil && *req.DateFrom != "" {
		d, err := q.civil.ParseDate(*req.DateFrom)
		if err != nil {
			return f, errs.Mark(err, ErrMalformedDate)
		}
		f.DateFrom = &d
	}
	if req.DateTo != nil && *req.DateTo != "" {
		d, err := q.civil.ParseDate(*req.DateTo)
		if err != nil {
			return f, errs.Mark(err, ErrMalformedDate)
		}
		f.DateTo = &d
	}
	if req.Court != nil && *req.Court != "" {
		f.CourtName = req.Court
	}
	for _, raw := range req.UserIDs {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return f, errs.Mark(err, ErrMalformedID)
			}
			f.UserIDs = append(f.UserIDs, id)
		}
	}
	return f, nil
}
