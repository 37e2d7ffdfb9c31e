package clock

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMalformedDateTime = errors.New("malformed date-time")
	ErrMalformedDate     = errors.New("malformed date")
)

const DateLayout = "2006-01-02"

// zone-less layouts are read as wall-clock values of the civil zone
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Civil maps instants onto naive wall-clock values of one configured zone.
//
// A civil value is carried as a time.Time whose location is UTC and whose
// fields are the wall clock in the civil zone. Values produced here are
// therefore comparable with each other and with what the database returns
// for TIMESTAMP WITHOUT TIME ZONE columns.
type Civil struct {
	loc *time.Location
}

func NewCivil(loc *time.Location) Civil {
	if loc == nil {
		loc = time.UTC
	}
	return Civil{loc: loc}
}

func (c Civil) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Normalize converts t into the civil zone and then drops the zone.
func (c Civil) Normalize(t time.Time) time.Time {
	w := t.In(c.Location())
	return time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), time.UTC)
}

// Now returns the current civil wall-clock time.
func (c Civil) Now(clk Clock) time.Time {
	return c.Normalize(clk.Now())
}

// ParseDateTime accepts RFC 3339 values with an offset (converted into the
// civil zone) or zone-less values (taken to be civil time already).
func (c Civil) ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMalformedDateTime
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return c.Normalize(t), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrMalformedDateTime
}

// ParseDate parses YYYY-MM-DD into civil midnight of that day.
func (c Civil) ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrMalformedDate
	}
	return t, nil
}

// StartOfDay truncates a civil value to midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
