//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/infra"
	"court-booking/internal/pkg/clock"
	"court-booking/tests/mock/dbmock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestBooking(t *testing.T) *booking.Booking {
	t.Helper()
	services := &booking.Services{
		Clock:           clock.NewMockClock(time.Date(2030, 6, 10, 6, 0, 0, 0, time.UTC)),
		Civil:           clock.NewCivil(time.UTC),
		PriceCalculator: booking.NewDefaultPriceCalculator(100000),
	}
	b, err := booking.NewBooking(services, uuid.New(), uuid.New(),
		time.Date(2030, 6, 10, 14, 0, 0, 0, time.UTC),
		time.Date(2030, 6, 10, 15, 0, 0, 0, time.UTC),
		nil)
	require.NoError(t, err)
	return b
}

func TestBookingRepository_LockCourt(t *testing.T) {
	courtID := uuid.New()

	tests := []struct {
		name     string
		row      *dbmock.Row
		wantKind *infra.RepositoryErrorKind
	}{
		{name: "success", row: dbmock.NewRow(courtID)},
		{name: "court not found", row: dbmock.ErrRow(pgx.ErrNoRows), wantKind: ptrKind(infra.KindNotFound)},
		{name: "database error", row: dbmock.ErrRow(assert.AnError), wantKind: ptrKind(infra.KindDBFailure)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := new(dbmock.MockDBTX)
			tx.On("QueryRow", mock.Anything, lockCourtSQL, []any{courtID}).Return(tt.row)

			err := NewBookingRepository().LockCourt(context.Background(), tx, courtID)

			if tt.wantKind == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, *tt.wantKind), "got %v", err)
			}
			tx.AssertExpectations(t)
		})
	}
}

func TestBookingRepository_Insert(t *testing.T) {
	b := newTestBooking(t)
	created := time.Date(2030, 6, 10, 6, 0, 1, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		tx := new(dbmock.MockDBTX)
		tx.On("QueryRow", mock.Anything, insertBookingSQL, mock.MatchedBy(func(args []any) bool {
			return len(args) == 7 &&
				args[0] == b.ID() &&
				args[3] == pgtype.Timestamp{Time: b.TimeSlot().Start(), Valid: true} &&
				args[5] == "active" &&
				args[6] == int64(100000)
		})).Return(dbmock.NewRow(pgtype.Timestamptz{Time: created, Valid: true}))

		saved, err := NewBookingRepository().Insert(context.Background(), tx, b)

		require.NoError(t, err)
		assert.Equal(t, b.ID(), saved.ID())
		assert.Equal(t, created, saved.CreatedAt())
		tx.AssertExpectations(t)
	})

	t.Run("exclusion violation is a conflict", func(t *testing.T) {
		tx := new(dbmock.MockDBTX)
		tx.On("QueryRow", mock.Anything, insertBookingSQL, mock.Anything).
			Return(dbmock.ErrRow(&pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"}))

		saved, err := NewBookingRepository().Insert(context.Background(), tx, b)

		assert.Nil(t, saved)
		assert.True(t, infra.IsKind(err, infra.KindConflict))
	})
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	b := newTestBooking(t)
	require.NoError(t, b.Cancel())

	tests := []struct {
		name     string
		tag      pgconn.CommandTag
		execErr  error
		wantKind *infra.RepositoryErrorKind
	}{
		{name: "success", tag: dbmock.CommandTag("UPDATE", 1)},
		{name: "no rows", tag: dbmock.CommandTag("UPDATE", 0), wantKind: ptrKind(infra.KindNotFound)},
		{name: "database error", execErr: assert.AnError, wantKind: ptrKind(infra.KindDBFailure)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := new(dbmock.MockDBTX)
			tx.On("Exec", mock.Anything, updateBookingStatusSQL, []any{b.ID(), "canceled"}).Return(tt.tag, tt.execErr)

			err := NewBookingRepository().UpdateStatus(context.Background(), tx, b)

			if tt.wantKind == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, *tt.wantKind), "got %v", err)
			}
			tx.AssertExpectations(t)
		})
	}
}

func TestBookingRepository_Delete(t *testing.T) {
	id := uuid.New()

	tx := new(dbmock.MockDBTX)
	tx.On("Exec", mock.Anything, deleteBookingSQL, []any{id}).Return(dbmock.CommandTag("DELETE", 0), nil)

	err := NewBookingRepository().Delete(context.Background(), tx, id)

	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestBookingRepository_FindByIDForUpdate(t *testing.T) {
	id, courtID, userID := uuid.New(), uuid.New(), uuid.New()
	start := time.Date(2030, 6, 10, 14, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tx := new(dbmock.MockDBTX)
	tx.On("QueryRow", mock.Anything, findBookingForUpdateSQL, []any{id}).Return(dbmock.NewRow(
		id, courtID, userID,
		pgtype.Timestamp{Time: start, Valid: true},
		pgtype.Timestamp{Time: end, Valid: true},
		"canceled", int64(5000),
		pgtype.Timestamptz{Time: start, Valid: true},
	))

	b, err := NewBookingRepository().FindByIDForUpdate(context.Background(), tx, id)

	require.NoError(t, err)
	assert.Equal(t, courtID, b.CourtID())
	assert.Equal(t, userID, b.UserID())
	assert.Equal(t, booking.StatusCanceled, b.Status())
	assert.Equal(t, int64(5000), b.Price().Cents())
	assert.Equal(t, start, b.TimeSlot().Start())
	assert.Equal(t, end, b.TimeSlot().End())
}

func ptrKind(k infra.RepositoryErrorKind) *infra.RepositoryErrorKind {
	return &k
}
