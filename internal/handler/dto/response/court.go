package response

import (
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CourtResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromCourtView(v *queries.CourtView) (*CourtResponse, error) {
	var resp CourtResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromCourtViews(vs []*queries.CourtView) ([]*CourtResponse, error) {
	resp := make([]*CourtResponse, 0, len(vs))
	if err := copier.Copy(&resp, vs); err != nil {
		return nil, err
	}
	return resp, nil
}

// FromCourt reads the entity through its getters.
func FromCourt(c *court.Court) (*CourtResponse, error) {
	var resp CourtResponse
	if err := copier.Copy(&resp, c); err != nil {
		return nil, err
	}
	return &resp, nil
}
