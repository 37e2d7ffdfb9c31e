package booking

import (
	"errors"
	"time"

	"court-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrOvernightBooking = errors.New("booking cannot span midnight")
	ErrStartNotInFuture = errors.New("booking must start in the future")
	ErrInvertedInterval = errors.New("booking end must be after its start")
	ErrSlotOccupied     = errors.New("time slot is already booked")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrAlreadyCanceled  = errors.New("booking is already canceled")
	ErrInvalidStatus    = errors.New("invalid booking status")
)

type Services struct {
	Clock           clock.Clock
	Civil           clock.Civil
	PriceCalculator PriceCalculator
}

type Booking struct {
	id        uuid.UUID
	courtID   uuid.UUID
	userID    uuid.UUID
	timeSlot  TimeSlot
	status    Status
	price     Money
	createdAt time.Time
}

// NewBooking validates a requested interval against the civil "now" and prices it.
// start and end must already be civil wall-clock values (see clock.Civil).
// A nil price falls back to the configured calculator.
func NewBooking(
	services *Services,
	courtID, userID uuid.UUID,
	start, end time.Time,
	priceCents *int64,
) (*Booking, error) {
	slot, err := NewRequestedSlot(start, end, services.Civil.Now(services.Clock))
	if err != nil {
		return nil, err
	}

	var cents int64
	if priceCents != nil {
		cents = *priceCents
	} else {
		cents = services.PriceCalculator.CalculatePriceCents(slot)
	}
	price, err := NewMoney(cents)
	if err != nil {
		return nil, err
	}

	return &Booking{
		id:       uuid.New(),
		courtID:  courtID,
		userID:   userID,
		timeSlot: slot,
		status:   StatusActive,
		price:    price,
	}, nil
}

func ReconstructBooking(
	id, courtID, userID uuid.UUID,
	timeSlot TimeSlot,
	status Status,
	price Money,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		courtID:   courtID,
		userID:    userID,
		timeSlot:  timeSlot,
		status:    status,
		price:     price,
		createdAt: createdAt,
	}
}

// Cancel releases the slot. Canceled bookings no longer take part in overlap checks.
func (b *Booking) Cancel() error {
	if b.status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	b.status = StatusCanceled
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status == StatusActive
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) CourtID() uuid.UUID   { return b.courtID }
func (b *Booking) UserID() uuid.UUID    { return b.userID }
func (b *Booking) TimeSlot() TimeSlot   { return b.timeSlot }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) Price() Money         { return b.price }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
