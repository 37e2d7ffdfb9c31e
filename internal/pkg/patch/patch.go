package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// CoalescePtr keeps optional fields optional: a nil patch leaves fallback untouched.
func CoalescePtr[T any](ptr *T, fallback *T) *T {
	if ptr != nil {
		v := *ptr
		return &v
	}
	return fallback
}
