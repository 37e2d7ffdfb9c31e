package queries

import (
	"time"

	"github.com/google/uuid"
)

// UserView represents read-optimized user profile data
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate *string   `json:"birth_date,omitempty"` // DD.MM.YYYY
	Phone     string    `json:"phone"`
	Photo     *string   `json:"photo,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type CourtView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookingView times are civil wall-clock values
type BookingView struct {
	ID         uuid.UUID `json:"id"`
	CourtID    uuid.UUID `json:"court_id"`
	CourtName  string    `json:"court_name"`
	UserID     uuid.UUID `json:"user_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

// DayBooking is an active booking of a court on one civil day, with its owner's name
type DayBooking struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	FirstName string
	LastName  string
}

// BookingFilter fields are optional and AND-combined. DateTo is inclusive.
type BookingFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	CourtName *string
	UserIDs   []uuid.UUID
}

type SlotView struct {
	Start        string  `json:"start"`
	End          string  `json:"end"`
	IsBooked     bool    `json:"is_booked"`
	OccupantName *string `json:"occupant_name,omitempty"`
}

type AvailabilityView struct {
	CourtID uuid.UUID  `json:"court_id"`
	Date    string     `json:"date"`
	Slots   []SlotView `json:"slots"`
}
