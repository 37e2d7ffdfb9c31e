package booking

import (
	"time"

	"court-booking/internal/pkg/clock"
)

// TimeSlot is a half-open interval [start, end) of civil wall-clock time
// within a single calendar day.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

// NewRequestedSlot validates an interval proposed for a new booking.
// The checks run in a fixed order and the first failure is returned.
func NewRequestedSlot(start, end, now time.Time) (TimeSlot, error) {
	if !clock.SameDay(start, end) {
		return TimeSlot{}, ErrOvernightBooking
	}
	if !start.After(now) {
		return TimeSlot{}, ErrStartNotInFuture
	}
	if !end.After(start) {
		return TimeSlot{}, ErrInvertedInterval
	}
	return TimeSlot{start: start, end: end}, nil
}

// NewTimeSlot builds a slot without the "must be in the future" rule,
// for values that were already accepted once.
func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !clock.SameDay(start, end) {
		return TimeSlot{}, ErrOvernightBooking
	}
	if !end.After(start) {
		return TimeSlot{}, ErrInvertedInterval
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time        { return ts.start }
func (ts TimeSlot) End() time.Time          { return ts.end }
func (ts TimeSlot) Duration() time.Duration { return ts.end.Sub(ts.start) }

// Overlaps uses the strict half-open test, so touching intervals do not overlap.
func (ts TimeSlot) Overlaps(start, end time.Time) bool {
	return ts.start.Before(end) && ts.end.After(start)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}
