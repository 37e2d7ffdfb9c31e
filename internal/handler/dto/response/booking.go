package response

import (
	"time"

	"court-booking/internal/domain/user"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// civil wall-clock values carry no offset on the wire
const civilLayout = "2006-01-02T15:04:05"

type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	CourtID    uuid.UUID `json:"court_id"`
	CourtName  string    `json:"court_name"`
	UserID     uuid.UUID `json:"user_id"`
	UserName   *string   `json:"user_name,omitempty"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"price"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromBookingView fills the owner's name only when withUserName is set.
func FromBookingView(v *queries.BookingView, withUserName bool) *BookingResponse {
	resp := &BookingResponse{
		ID:         v.ID,
		CourtID:    v.CourtID,
		CourtName:  v.CourtName,
		UserID:     v.UserID,
		StartTime:  v.StartTime.Format(civilLayout),
		EndTime:    v.EndTime.Format(civilLayout),
		Status:     v.Status,
		PriceCents: v.PriceCents,
		CreatedAt:  v.CreatedAt,
	}
	if withUserName {
		name := user.DisplayName(v.FirstName, v.LastName)
		resp.UserName = &name
	}
	return resp
}

func FromBookingViews(vs []*queries.BookingView, withUserName bool) []*BookingResponse {
	resp := make([]*BookingResponse, 0, len(vs))
	for _, v := range vs {
		resp = append(resp, FromBookingView(v, withUserName))
	}
	return resp
}

type AvailabilityResponse struct {
	CourtID uuid.UUID          `json:"court_id"`
	Date    string             `json:"date"`
	Slots   []queries.SlotView `json:"slots"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{
		CourtID: v.CourtID,
		Date:    v.Date,
		Slots:   v.Slots,
	}
}
