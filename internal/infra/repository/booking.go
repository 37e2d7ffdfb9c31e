package repository

import (
	"context"
	"time"

	"court-booking/internal/domain/booking"
	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	lockCourtSQL = `SELECT id FROM courts WHERE id = $1 FOR UPDATE`

	findOverlappingSQL = `
		SELECT start_time, end_time
		FROM bookings
		WHERE court_id = $1
		  AND status = $4
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time`

	insertBookingSQL = `
		INSERT INTO bookings (id, court_id, user_id, start_time, end_time, status, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	findBookingForUpdateSQL = `
		SELECT id, court_id, user_id, start_time, end_time, status, price_cents, created_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE`

	updateBookingStatusSQL = `UPDATE bookings SET status = $2 WHERE id = $1`

	deleteBookingSQL = `DELETE FROM bookings WHERE id = $1`
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

// LockCourt takes a row lock on the court, serializing booking creation per court
// until the surrounding transaction ends.
func (r *BookingRepository) LockCourt(ctx context.Context, tx db.DBTX, courtID uuid.UUID) error {
	var id uuid.UUID
	if err := tx.QueryRow(ctx, lockCourtSQL, courtID).Scan(&id); err != nil {
		return infra.WrapRepoErr("failed to lock court", err)
	}
	return nil
}

// FindOverlapping lists intervals of the court in the given status that strictly
// overlap [start, end).
func (r *BookingRepository) FindOverlapping(
	ctx context.Context,
	tx db.DBTX,
	courtID uuid.UUID,
	start, end time.Time,
	status booking.Status,
) ([]booking.TimeSlot, error) {
	rows, err := tx.Query(ctx, findOverlappingSQL,
		courtID, pgconv.TimestampToPgtype(start), pgconv.TimestampToPgtype(end), status.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find overlapping bookings", err)
	}
	defer rows.Close()

	var slots []booking.TimeSlot
	for rows.Next() {
		var s, e pgtype.Timestamp
		if err := rows.Scan(&s, &e); err != nil {
			return nil, infra.WrapRepoErr("failed to scan overlapping booking", err)
		}
		slot, err := booking.NewTimeSlot(pgconv.TimestampFromPgtype(s), pgconv.TimestampFromPgtype(e))
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking has invalid interval", err, infra.KindDBFailure)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate overlapping bookings", err)
	}

	return slots, nil
}

func (r *BookingRepository) Insert(ctx context.Context, tx db.DBTX, b *booking.Booking) (*booking.Booking, error) {
	var createdAt pgtype.Timestamptz
	err := tx.QueryRow(ctx, insertBookingSQL,
		b.ID(),
		b.CourtID(),
		b.UserID(),
		pgconv.TimestampToPgtype(b.TimeSlot().Start()),
		pgconv.TimestampToPgtype(b.TimeSlot().End()),
		b.Status().String(),
		b.Price().Cents(),
	).Scan(&createdAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to insert booking", err)
	}

	return booking.ReconstructBooking(
		b.ID(), b.CourtID(), b.UserID(), b.TimeSlot(), b.Status(), b.Price(),
		pgconv.TimeFromPgtype(createdAt),
	), nil
}

// FindByIDForUpdate loads and row-locks a booking.
func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	var (
		bookingID, courtID, userID uuid.UUID
		start, end                 pgtype.Timestamp
		status                     string
		priceCents                 int64
		createdAt                  pgtype.Timestamptz
	)
	err := tx.QueryRow(ctx, findBookingForUpdateSQL, id).
		Scan(&bookingID, &courtID, &userID, &start, &end, &status, &priceCents, &createdAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	slot, err := booking.NewTimeSlot(pgconv.TimestampFromPgtype(start), pgconv.TimestampFromPgtype(end))
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid interval", err, infra.KindDBFailure)
	}
	st, err := booking.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid status", err, infra.KindDBFailure)
	}
	price, err := booking.NewMoney(priceCents)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid price", err, infra.KindDBFailure)
	}

	return booking.ReconstructBooking(bookingID, courtID, userID, slot, st, price, pgconv.TimeFromPgtype(createdAt)), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	tag, err := tx.Exec(ctx, updateBookingStatusSQL, b.ID(), b.Status().String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteBookingSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
