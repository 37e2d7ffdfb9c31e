package response

import (
	"time"

	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate *string   `json:"birth_date,omitempty"`
	Phone     string    `json:"phone"`
	Photo     *string   `json:"photo,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUserView(v *queries.UserView) (*UserResponse, error) {
	var resp UserResponse
	if err := copier.Copy(&resp, v); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromUserViews(vs []*queries.UserView) ([]*UserResponse, error) {
	resp := make([]*UserResponse, 0, len(vs))
	if err := copier.Copy(&resp, vs); err != nil {
		return nil, err
	}
	return resp, nil
}
