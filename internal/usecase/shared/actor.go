package shared

import (
	"court-booking/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller as resolved by the auth middleware.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// CanAccess reports whether the actor may act on resources owned by userID.
func (a Actor) CanAccess(userID uuid.UUID) bool {
	return a.IsAdmin() || a.ID == userID
}
