package request

import "github.com/google/uuid"

// CreateBookingRequest carries times as strings so that zone handling stays
// in one place: RFC 3339 values with an offset are converted into the civil
// zone, zone-less values are taken as civil time.
type CreateBookingRequest struct {
	CourtID    uuid.UUID  `json:"court_id" binding:"required"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	StartTime  string     `json:"start_time" binding:"required"`
	EndTime    string     `json:"end_time" binding:"required"`
	PriceCents *int64     `json:"price,omitempty"`
}

type AvailabilityRequest struct {
	CourtID string `form:"court_id" binding:"required"`
	Date    string `form:"date" binding:"required"` // YYYY-MM-DD
}

// BookingFilterRequest accepts user_ids repeated or comma separated.
type BookingFilterRequest struct {
	DateFrom *string  `form:"date_from"`
	DateTo   *string  `form:"date_to"`
	Court    *string  `form:"court"`
	UserIDs  []string `form:"user_ids"`
}
