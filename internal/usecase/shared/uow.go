package shared

import (
	"context"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/court"
	"court-booking/internal/domain/user"
	"court-booking/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Courts() CourtRepository
	Users() UserRepository
	DB() db.DBTX
}

type BookingRepository interface {
	LockCourt(ctx context.Context, tx db.DBTX, courtID uuid.UUID) error
	FindOverlapping(ctx context.Context, tx db.DBTX, courtID uuid.UUID, start, end time.Time, status booking.Status) ([]booking.TimeSlot, error)
	Insert(ctx context.Context, tx db.DBTX, b *booking.Booking) (*booking.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type CourtRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *court.Court) (*court.Court, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (*user.User, error)
	UpdateProfile(ctx context.Context, tx db.DBTX, u *user.User) error
	SetVerificationCode(ctx context.Context, tx db.DBTX, userID uuid.UUID, code *string) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*user.User, error)
	FindByPhone(ctx context.Context, tx db.DBTX, phone user.Phone) (*user.User, error)
}
