//go:build unit

package storemock

import (
	"context"
	"time"

	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBookingReadStore struct {
	mock.Mock
}

func (m *MockBookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*queries.BookingView)
	return v, args.Error(1)
}

func (m *MockBookingReadStore) FindByCourtAndDay(ctx context.Context, courtID uuid.UUID, day time.Time) ([]queries.DayBooking, error) {
	args := m.Called(ctx, courtID, day)
	v, _ := args.Get(0).([]queries.DayBooking)
	return v, args.Error(1)
}

func (m *MockBookingReadStore) List(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	args := m.Called(ctx, filter)
	v, _ := args.Get(0).([]*queries.BookingView)
	return v, args.Error(1)
}

type MockCourtReadStore struct {
	mock.Mock
}

func (m *MockCourtReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CourtView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*queries.CourtView)
	return v, args.Error(1)
}

func (m *MockCourtReadStore) List(ctx context.Context) ([]*queries.CourtView, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]*queries.CourtView)
	return v, args.Error(1)
}

type MockUserReadStore struct {
	mock.Mock
}

func (m *MockUserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*queries.UserView)
	return v, args.Error(1)
}

func (m *MockUserReadStore) List(ctx context.Context) ([]*queries.UserView, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]*queries.UserView)
	return v, args.Error(1)
}

// MockSMSSender records delivered texts.
type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) Send(ctx context.Context, phone, text string) error {
	return m.Called(ctx, phone, text).Error(0)
}
