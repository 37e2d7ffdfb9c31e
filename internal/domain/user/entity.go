package user

import (
	"time"

	"court-booking/internal/pkg/patch"

	"github.com/google/uuid"
)

type User struct {
	id               uuid.UUID
	email            Email
	firstName        Name
	lastName         Name
	birthDate        *BirthDate
	phone            Phone
	passwordHash     string
	photo            *string
	role             Role
	isActive         bool
	verificationCode *string
	createdAt        time.Time
	updatedAt        time.Time
}

type NewUserParams struct {
	Email        Email
	FirstName    Name
	LastName     Name
	BirthDate    *BirthDate
	Phone        Phone
	PasswordHash string
	Photo        *string
	Role         Role
}

func NewUser(p NewUserParams) *User {
	return &User{
		id:           uuid.New(),
		email:        p.Email,
		firstName:    p.FirstName,
		lastName:     p.LastName,
		birthDate:    p.BirthDate,
		phone:        p.Phone,
		passwordHash: p.PasswordHash,
		photo:        p.Photo,
		role:         p.Role,
		isActive:     true,
	}
}

type ReconstructParams struct {
	ID               uuid.UUID
	NewUserParams
	IsActive         bool
	VerificationCode *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func ReconstructUser(p ReconstructParams) *User {
	u := NewUser(p.NewUserParams)
	u.id = p.ID
	u.isActive = p.IsActive
	u.verificationCode = p.VerificationCode
	u.createdAt = p.CreatedAt
	u.updatedAt = p.UpdatedAt
	return u
}

// ProfilePatch carries already validated values; nil fields stay unchanged.
type ProfilePatch struct {
	Email     *Email
	FirstName *Name
	LastName  *Name
	BirthDate *BirthDate
	Phone     *Phone
	Photo     *string
}

func (u *User) ApplyProfile(p ProfilePatch) {
	u.email = patch.Coalesce(p.Email, u.email)
	u.firstName = patch.Coalesce(p.FirstName, u.firstName)
	u.lastName = patch.Coalesce(p.LastName, u.lastName)
	u.birthDate = patch.CoalescePtr(p.BirthDate, u.birthDate)
	u.phone = patch.Coalesce(p.Phone, u.phone)
	u.photo = patch.CoalescePtr(p.Photo, u.photo)
}

func (u *User) DisplayName() string {
	return DisplayName(u.firstName.Value(), u.lastName.Value())
}

func (u *User) ID() uuid.UUID             { return u.id }
func (u *User) Email() Email              { return u.email }
func (u *User) FirstName() Name           { return u.firstName }
func (u *User) LastName() Name            { return u.lastName }
func (u *User) BirthDate() *BirthDate     { return u.birthDate }
func (u *User) Phone() Phone              { return u.phone }
func (u *User) PasswordHash() string      { return u.passwordHash }
func (u *User) Photo() *string            { return u.photo }
func (u *User) Role() Role                { return u.role }
func (u *User) IsActive() bool            { return u.isActive }
func (u *User) VerificationCode() *string { return u.verificationCode }
func (u *User) CreatedAt() time.Time      { return u.createdAt }
func (u *User) UpdatedAt() time.Time      { return u.updatedAt }
