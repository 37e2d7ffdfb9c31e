package readstore

import (
	"context"
	"strconv"
	"strings"
	"time"

	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingViewColumns = `
	b.id, b.court_id, c.name, b.user_id, u.first_name, u.last_name,
	b.start_time, b.end_time, b.status, b.price_cents, b.created_at`

const bookingViewFrom = `
	FROM bookings b
	JOIN courts c ON c.id = b.court_id
	JOIN users u ON u.id = b.user_id`

const findBookingByIDSQL = `SELECT` + bookingViewColumns + bookingViewFrom + `
	WHERE b.id = $1`

const findBookingsByCourtAndDaySQL = `
	SELECT b.id, b.user_id, b.start_time, b.end_time, u.first_name, u.last_name
	FROM bookings b
	JOIN users u ON u.id = b.user_id
	WHERE b.court_id = $1
	  AND b.status = 'active'
	  AND b.start_time < $3
	  AND b.end_time > $2
	ORDER BY b.start_time`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := scanBookingView(r.db.QueryRow(ctx, findBookingByIDSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

// FindByCourtAndDay returns active bookings of the court intersecting the civil day.
func (r *BookingReadStore) FindByCourtAndDay(ctx context.Context, courtID uuid.UUID, day time.Time) ([]queries.DayBooking, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	rows, err := r.db.Query(ctx, findBookingsByCourtAndDaySQL,
		courtID, pgconv.TimestampToPgtype(from), pgconv.TimestampToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by court and day", err)
	}
	defer rows.Close()

	result := []queries.DayBooking{}
	for rows.Next() {
		var (
			item       queries.DayBooking
			start, end pgtype.Timestamp
		)
		if err := rows.Scan(&item.ID, &item.UserID, &start, &end, &item.FirstName, &item.LastName); err != nil {
			return nil, infra.WrapRepoErr("failed to scan day booking", err)
		}
		item.StartTime = pgconv.TimestampFromPgtype(start)
		item.EndTime = pgconv.TimestampFromPgtype(end)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate day bookings", err)
	}

	return result, nil
}

// List returns bookings matching every set field of the filter, newest start first.
func (r *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	query, args := buildBookingListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	result := []*queries.BookingView{}
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}

	return result, nil
}

func buildBookingListQuery(filter queries.BookingFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if filter.DateFrom != nil {
		add("b.start_time >= ?", pgconv.TimestampToPgtype(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		add("b.start_time < ?", pgconv.TimestampToPgtype(filter.DateTo.AddDate(0, 0, 1)))
	}
	if filter.CourtName != nil {
		add("c.name = ?", *filter.CourtName)
	}
	if len(filter.UserIDs) > 0 {
		ids := make([]string, len(filter.UserIDs))
		for i, id := range filter.UserIDs {
			ids[i] = id.String()
		}
		add("b.user_id = ANY(?::uuid[])", ids)
	}

	var sb strings.Builder
	sb.WriteString("SELECT")
	sb.WriteString(bookingViewColumns)
	sb.WriteString(bookingViewFrom)
	if len(conds) > 0 {
		sb.WriteString("\n\tWHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString("\n\tORDER BY b.start_time DESC, b.id")

	return sb.String(), args
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		v          queries.BookingView
		start, end pgtype.Timestamp
		createdAt  pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.CourtID, &v.CourtName, &v.UserID, &v.FirstName, &v.LastName,
		&start, &end, &v.Status, &v.PriceCents, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	v.StartTime = pgconv.TimestampFromPgtype(start)
	v.EndTime = pgconv.TimestampFromPgtype(end)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &v, nil
}
