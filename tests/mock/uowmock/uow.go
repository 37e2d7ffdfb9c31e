//go:build unit

package uowmock

import (
	"context"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/domain/court"
	"court-booking/internal/domain/user"
	"court-booking/internal/infra/db"
	"court-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// UoW runs the callback directly against mocked repositories.
// Calls counts how many transactions were opened.
type UoW struct {
	Bookings *MockBookingRepository
	Courts   *MockCourtRepository
	Users    *MockUserRepository
	Calls    int
}

func New() *UoW {
	return &UoW{
		Bookings: &MockBookingRepository{},
		Courts:   &MockCourtRepository{},
		Users:    &MockUserRepository{},
	}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.Calls++
	return fn(ctx, &tx{uow: u})
}

// AssertExpectations checks every repository mock at once.
func (u *UoW) AssertExpectations(t mock.TestingT) {
	u.Bookings.AssertExpectations(t)
	u.Courts.AssertExpectations(t)
	u.Users.AssertExpectations(t)
}

type tx struct {
	uow *UoW
}

func (t *tx) Bookings() shared.BookingRepository { return t.uow.Bookings }
func (t *tx) Courts() shared.CourtRepository     { return t.uow.Courts }
func (t *tx) Users() shared.UserRepository       { return t.uow.Users }
func (t *tx) DB() db.DBTX                        { return nil }

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) LockCourt(ctx context.Context, _ db.DBTX, courtID uuid.UUID) error {
	return m.Called(ctx, courtID).Error(0)
}

func (m *MockBookingRepository) FindOverlapping(ctx context.Context, _ db.DBTX, courtID uuid.UUID, start, end time.Time, status booking.Status) ([]booking.TimeSlot, error) {
	args := m.Called(ctx, courtID, start, end, status)
	slots, _ := args.Get(0).([]booking.TimeSlot)
	return slots, args.Error(1)
}

func (m *MockBookingRepository) Insert(ctx context.Context, _ db.DBTX, b *booking.Booking) (*booking.Booking, error) {
	args := m.Called(ctx, b)
	created, _ := args.Get(0).(*booking.Booking)
	return created, args.Error(1)
}

func (m *MockBookingRepository) FindByIDForUpdate(ctx context.Context, _ db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*booking.Booking)
	return b, args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, _ db.DBTX, b *booking.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, _ db.DBTX, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCourtRepository struct {
	mock.Mock
}

func (m *MockCourtRepository) Create(ctx context.Context, _ db.DBTX, c *court.Court) (*court.Court, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(*court.Court)
	return created, args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, _ db.DBTX, u *user.User) (*user.User, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(*user.User)
	return created, args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, _ db.DBTX, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) SetVerificationCode(ctx context.Context, _ db.DBTX, userID uuid.UUID, code *string) error {
	return m.Called(ctx, userID, code).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, _ db.DBTX, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, _ db.DBTX, phone user.Phone) (*user.User, error) {
	args := m.Called(ctx, phone)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}
