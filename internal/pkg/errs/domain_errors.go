package errs

// Category markers. Every error leaving a usecase carries exactly one of them,
// so the transport layer can map failures without knowing individual sentinels.
var (
	ErrValidation     = New("validation failed")
	ErrConflict       = New("conflict")
	ErrNotFound       = New("not found")
	ErrForbidden      = New("forbidden")
	ErrUnauthorized   = New("unauthorized")
	ErrInfrastructure = New("infrastructure failure")
)

type Category int

const (
	CategoryUnknown Category = iota
	CategoryValidation
	CategoryConflict
	CategoryNotFound
	CategoryForbidden
	CategoryUnauthorized
	CategoryInfrastructure
)

func (c Category) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryConflict:
		return "conflict"
	case CategoryNotFound:
		return "not_found"
	case CategoryForbidden:
		return "forbidden"
	case CategoryUnauthorized:
		return "unauthorized"
	case CategoryInfrastructure:
		return "infrastructure"
	default:
		return "unknown"
	}
}

// CategoryOf reports the category mark carried by err.
// Unmarked errors are treated as infrastructure failures.
func CategoryOf(err error) Category {
	switch {
	case err == nil:
		return CategoryUnknown
	case Is(err, ErrValidation):
		return CategoryValidation
	case Is(err, ErrConflict):
		return CategoryConflict
	case Is(err, ErrNotFound):
		return CategoryNotFound
	case Is(err, ErrForbidden):
		return CategoryForbidden
	case Is(err, ErrUnauthorized):
		return CategoryUnauthorized
	default:
		return CategoryInfrastructure
	}
}
