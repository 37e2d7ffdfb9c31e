package repository

import (
	"context"

	"court-booking/internal/domain/user"
	"court-booking/internal/infra"
	"court-booking/internal/infra/db"
	"court-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `
	id, email, first_name, last_name, birth_date, phone, password_hash, photo,
	role, is_active, verification_code, created_at, updated_at`

const (
	insertUserSQL = `
		INSERT INTO users (id, email, first_name, last_name, birth_date, phone, password_hash, photo, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	updateUserProfileSQL = `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, birth_date = $5, phone = $6, photo = $7,
		    updated_at = now()
		WHERE id = $1`

	setVerificationCodeSQL = `UPDATE users SET verification_code = $2, updated_at = now() WHERE id = $1`

	findUserByIDSQL    = `SELECT` + userColumns + ` FROM users WHERE id = $1`
	findUserByPhoneSQL = `SELECT` + userColumns + ` FROM users WHERE phone = $1`
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) (*user.User, error) {
	var createdAt, updatedAt pgtype.Timestamptz
	err := tx.QueryRow(ctx, insertUserSQL,
		u.ID(),
		u.Email().Value(),
		u.FirstName().Value(),
		u.LastName().Value(),
		birthDateToPgtype(u.BirthDate()),
		u.Phone().Value(),
		u.PasswordHash(),
		pgconv.StringPtrToPgtype(u.Photo()),
		u.Role().String(),
		u.IsActive(),
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create user", err)
	}

	return user.ReconstructUser(user.ReconstructParams{
		ID:            u.ID(),
		NewUserParams: paramsOf(u),
		IsActive:      u.IsActive(),
		CreatedAt:     pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:     pgconv.TimeFromPgtype(updatedAt),
	}), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, tx db.DBTX, u *user.User) error {
	tag, err := tx.Exec(ctx, updateUserProfileSQL,
		u.ID(),
		u.Email().Value(),
		u.FirstName().Value(),
		u.LastName().Value(),
		birthDateToPgtype(u.BirthDate()),
		u.Phone().Value(),
		pgconv.StringPtrToPgtype(u.Photo()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update user profile", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

// SetVerificationCode stores a freshly issued code, or clears it when code is nil.
func (r *UserRepository) SetVerificationCode(ctx context.Context, tx db.DBTX, userID uuid.UUID, code *string) error {
	tag, err := tx.Exec(ctx, setVerificationCodeSQL, userID, pgconv.StringPtrToPgtype(code))
	if err != nil {
		return infra.WrapRepoErr("failed to set verification code", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*user.User, error) {
	u, err := scanUser(tx.QueryRow(ctx, findUserByIDSQL, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return u, nil
}

func (r *UserRepository) FindByPhone(ctx context.Context, tx db.DBTX, phone user.Phone) (*user.User, error) {
	u, err := scanUser(tx.QueryRow(ctx, findUserByPhoneSQL, phone.Value()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by phone", err)
	}
	return u, nil
}

// scanUser trusts stored values; they passed validation on the way in.
func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id                                          uuid.UUID
		email, firstName, lastName, phone, pwd, rl string
		birthDate                                   pgtype.Date
		photo, code                                 pgtype.Text
		isActive                                    bool
		createdAt, updatedAt                        pgtype.Timestamptz
	)
	err := row.Scan(
		&id, &email, &firstName, &lastName, &birthDate, &phone, &pwd, &photo,
		&rl, &isActive, &code, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(rl)
	if err != nil {
		return nil, err
	}

	var birth *user.BirthDate
	if t := pgconv.DatePtrFromPgtype(birthDate); t != nil {
		b := user.BirthDateFromTime(*t)
		birth = &b
	}

	return user.ReconstructUser(user.ReconstructParams{
		ID: id,
		NewUserParams: user.NewUserParams{
			Email:        user.EmailFromTrusted(email),
			FirstName:    user.NameFromTrusted(firstName),
			LastName:     user.NameFromTrusted(lastName),
			BirthDate:    birth,
			Phone:        user.PhoneFromTrusted(phone),
			PasswordHash: pwd,
			Photo:        pgconv.StringPtrFromPgtype(photo),
			Role:         role,
		},
		IsActive:         isActive,
		VerificationCode: pgconv.StringPtrFromPgtype(code),
		CreatedAt:        pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:        pgconv.TimeFromPgtype(updatedAt),
	}), nil
}

func paramsOf(u *user.User) user.NewUserParams {
	return user.NewUserParams{
		Email:        u.Email(),
		FirstName:    u.FirstName(),
		LastName:     u.LastName(),
		BirthDate:    u.BirthDate(),
		Phone:        u.Phone(),
		PasswordHash: u.PasswordHash(),
		Photo:        u.Photo(),
		Role:         u.Role(),
	}
}

func birthDateToPgtype(b *user.BirthDate) pgtype.Date {
	if b == nil {
		return pgtype.Date{}
	}
	t := b.Time()
	return pgconv.DatePtrToPgtype(&t)
}
