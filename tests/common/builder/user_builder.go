//go:build unit || e2e

package builder

import (
	"time"

	"court-booking/internal/domain/user"
	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

var referenceNow = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	BirthDate    string
	Phone        string
	Password     string
	PasswordHash string
	Photo        *string
	Role         string
	IsActive     bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "test@example.com",
		FirstName:    "Ivan",
		LastName:     "Petrov",
		BirthDate:    "15.03.1990",
		Phone:        "+7(999)123-45-67",
		Password:     "password123",
		PasswordHash: "hashed_password",
		Role:         "user",
		IsActive:     true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	first, err := user.NewName(u.FirstName)
	if err != nil {
		return nil, err
	}
	last, err := user.NewName(u.LastName)
	if err != nil {
		return nil, err
	}
	phone, err := user.NewPhone(u.Phone)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	var birth *user.BirthDate
	if u.BirthDate != "" {
		b, err := user.ParseBirthDate(u.BirthDate, referenceNow)
		if err != nil {
			return nil, err
		}
		birth = &b
	}

	return user.NewUser(user.NewUserParams{
		Email:        email,
		FirstName:    first,
		LastName:     last,
		BirthDate:    birth,
		Phone:        phone,
		PasswordHash: u.PasswordHash,
		Photo:        u.Photo,
		Role:         role,
	}), nil
}

func (u *UserBuilder) BuildReadModel() *queries.UserView {
	view := &queries.UserView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Photo:     u.Photo,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: referenceNow,
	}
	if u.BirthDate != "" {
		b := u.BirthDate
		view.BirthDate = &b
	}
	return view
}

func (u *UserBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	req := reqdto.RegisterRequest{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Password:  u.Password,
		Photo:     u.Photo,
		IsAdmin:   u.Role == "admin",
	}
	if u.BirthDate != "" {
		b := u.BirthDate
		req.BirthDate = &b
	}
	return req
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithPhone(phone string) *UserBuilder {
	u.Phone = phone
	return u
}

func (u *UserBuilder) WithName(first, last string) *UserBuilder {
	u.FirstName = first
	u.LastName = last
	return u
}

func (u *UserBuilder) WithBirthDate(date string) *UserBuilder {
	u.BirthDate = date
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Role = "admin"
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
