package readstore

import (
	"context"

	"court-booking/internal/domain/user"
	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/pgconv"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const userViewColumns = `
	id, email, first_name, last_name, birth_date, phone, photo, role, is_active, created_at`

const (
	findUserViewByIDSQL = `SELECT` + userViewColumns + ` FROM users WHERE id = $1`
	listUsersSQL        = `SELECT` + userViewColumns + ` FROM users ORDER BY created_at, id`
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	view, err := scanUserView(r.db.QueryRow(ctx, findUserViewByIDSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return view, nil
}

func (r *UserReadStore) List(ctx context.Context) ([]*queries.UserView, error) {
	rows, err := r.db.Query(ctx, listUsersSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	result := []*queries.UserView{}
	for rows.Next() {
		view, err := scanUserView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan user", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate users", err)
	}
	return result, nil
}

func scanUserView(row pgx.Row) (*queries.UserView, error) {
	var (
		v         queries.UserView
		birthDate pgtype.Date
		photo     pgtype.Text
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.Email, &v.FirstName, &v.LastName, &birthDate,
		&v.Phone, &photo, &v.Role, &v.IsActive, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if t := pgconv.DatePtrFromPgtype(birthDate); t != nil {
		s := user.BirthDateFromTime(*t).String()
		v.BirthDate = &s
	}
	v.Photo = pgconv.StringPtrFromPgtype(photo)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &v, nil
}
