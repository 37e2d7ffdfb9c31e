//go:build unit || e2e

package builder

import (
	"time"

	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID         uuid.UUID
	CourtID    uuid.UUID
	CourtName  string
	UserID     uuid.UUID
	FirstName  string
	LastName   string
	StartTime  time.Time // civil wall clock
	EndTime    time.Time
	Status     string
	PriceCents int64
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:         uuid.New(),
		CourtID:    uuid.New(),
		CourtName:  "Court 1",
		UserID:     uuid.New(),
		FirstName:  "Ivan",
		LastName:   "Petrov",
		StartTime:  time.Date(2030, 5, 10, 14, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2030, 5, 10, 15, 0, 0, 0, time.UTC),
		Status:     "active",
		PriceCents: 100000,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:         b.ID,
		CourtID:    b.CourtID,
		CourtName:  b.CourtName,
		UserID:     b.UserID,
		FirstName:  b.FirstName,
		LastName:   b.LastName,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     b.Status,
		PriceCents: b.PriceCents,
		CreatedAt:  referenceNow,
	}
}

func (b *BookingBuilder) BuildCreateDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		CourtID:   b.CourtID,
		StartTime: b.StartTime.Format("2006-01-02T15:04:05"),
		EndTime:   b.EndTime.Format("2006-01-02T15:04:05"),
	}
}

func (b *BookingBuilder) WithSlot(start, end time.Time) *BookingBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *BookingBuilder) Canceled() *BookingBuilder {
	b.Status = "canceled"
	return b
}
