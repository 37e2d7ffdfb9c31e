package user

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidPhone     = errors.New("phone must match +7(XXX)XXX-XX-XX")
	ErrInvalidBirthDate = errors.New("birth date must be DD.MM.YYYY")
	ErrBirthDateFuture  = errors.New("birth date cannot be in the future")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrNameTooLong      = errors.New("name is too long (max 100 characters)")
)

const (
	BirthDateLayout = "02.01.2006"
	MaxNameLength   = 100
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+7\(\d{3}\)\d{3}-\d{2}-\d{2}$`)
)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

// EmailFromTrusted skips validation for values read back from storage.
func EmailFromTrusted(s string) Email { return Email{value: s} }

func (e Email) Value() string {
	return e.value
}

// Phone is stored in the display format +7(XXX)XXX-XX-XX.
type Phone struct {
	value string
}

func NewPhone(s string) (Phone, error) {
	s = strings.TrimSpace(s)
	if !phoneRegex.MatchString(s) {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: s}, nil
}

func PhoneFromTrusted(s string) Phone { return Phone{value: s} }

func (p Phone) Value() string {
	return p.value
}

type BirthDate struct {
	value time.Time
}

func ParseBirthDate(s string, now time.Time) (BirthDate, error) {
	t, err := time.Parse(BirthDateLayout, strings.TrimSpace(s))
	if err != nil {
		return BirthDate{}, ErrInvalidBirthDate
	}
	if t.After(now) {
		return BirthDate{}, ErrBirthDateFuture
	}
	return BirthDate{value: t}, nil
}

func BirthDateFromTime(t time.Time) BirthDate {
	return BirthDate{value: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (b BirthDate) Time() time.Time {
	return b.value
}

func (b BirthDate) String() string {
	return b.value.Format(BirthDateLayout)
}

type Name struct {
	value string
}

func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Name{}, ErrEmptyName
	}
	if utf8.RuneCountInString(s) > MaxNameLength {
		return Name{}, ErrNameTooLong
	}
	return Name{value: s}, nil
}

func NameFromTrusted(s string) Name { return Name{value: s} }

func (n Name) Value() string {
	return n.value
}

// DisplayName renders "First L." as shown to administrators on the schedule.
func DisplayName(firstName, lastName string) string {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	if last == "" {
		return first
	}
	r, _ := utf8.DecodeRuneInString(last)
	return first + " " + string(r) + "."
}
