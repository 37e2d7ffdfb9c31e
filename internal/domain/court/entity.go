package court

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrEmptyCourtName     = errors.New("court name cannot be empty")
	ErrCourtNameTooLong   = errors.New("court name is too long (max 255 characters)")
	ErrDescriptionTooLong = errors.New("court description is too long (max 1000 characters)")
)

const (
	MaxCourtNameLength   = 255
	MaxDescriptionLength = 1000
)

type Court struct {
	id          uuid.UUID
	name        string
	description *string
	createdAt   time.Time
}

func NewCourt(name string, description *string) (*Court, error) {
	if err := validateCourtName(name); err != nil {
		return nil, err
	}
	desc, err := normalizeDescription(description)
	if err != nil {
		return nil, err
	}

	return &Court{
		id:          uuid.New(),
		name:        strings.TrimSpace(name),
		description: desc,
	}, nil
}

func ReconstructCourt(id uuid.UUID, name string, description *string, createdAt time.Time) *Court {
	return &Court{
		id:          id,
		name:        name,
		description: description,
		createdAt:   createdAt,
	}
}

func validateCourtName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCourtName
	}
	if utf8.RuneCountInString(name) > MaxCourtNameLength {
		return ErrCourtNameTooLong
	}
	return nil
}

func normalizeDescription(description *string) (*string, error) {
	if description == nil {
		return nil, nil
	}
	d := strings.TrimSpace(*description)
	if d == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(d) > MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}
	return &d, nil
}

func (c *Court) ID() uuid.UUID        { return c.id }
func (c *Court) Name() string         { return c.name }
func (c *Court) Description() *string { return c.description }
func (c *Court) CreatedAt() time.Time { return c.createdAt }
