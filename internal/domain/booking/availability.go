package booking

import (
	"errors"
	"fmt"
	"time"

	"court-booking/internal/pkg/clock"
)

var ErrInvalidOperatingHours = errors.New("invalid operating hours")

// OperatingHours is the daily window, in whole civil hours, covered by availability slots.
type OperatingHours struct {
	open  int
	close int
}

func NewOperatingHours(openHour, closeHour int) (OperatingHours, error) {
	if openHour < 0 || closeHour > 24 || openHour >= closeHour {
		return OperatingHours{}, ErrInvalidOperatingHours
	}
	return OperatingHours{open: openHour, close: closeHour}, nil
}

func (h OperatingHours) Open() int  { return h.open }
func (h OperatingHours) Close() int { return h.close }

// Occupancy is an active booking interval together with its owner's display name.
type Occupancy struct {
	Start     time.Time
	End       time.Time
	OwnerName string
}

type Slot struct {
	Start        time.Time
	End          time.Time
	IsBooked     bool
	OccupantName *string
}

// StartLabel and EndLabel render the slot bounds as HH:MM. A window closing
// at 24 renders its last bound as 24:00.
func (s Slot) StartLabel() string { return hourLabel(s.Start, s.Start) }
func (s Slot) EndLabel() string   { return hourLabel(s.Start, s.End) }

func hourLabel(day, t time.Time) string {
	if !clock.SameDay(day, t) && t.Equal(clock.StartOfDay(t)) {
		return "24:00"
	}
	return t.Format("15:04")
}

// BuildAvailability splits the operating window of day into one-hour slots.
// A slot is booked when any occupancy intersects it, partial-hour bookings included.
// Occupant names are attached only when privileged is true; for a slot touched by
// several bookings the earliest one wins.
func BuildAvailability(day time.Time, hours OperatingHours, occupied []Occupancy, privileged bool) []Slot {
	base := clock.StartOfDay(day)
	slots := make([]Slot, 0, hours.close-hours.open)

	for h := hours.open; h < hours.close; h++ {
		slot := Slot{
			Start: base.Add(time.Duration(h) * time.Hour),
			End:   base.Add(time.Duration(h+1) * time.Hour),
		}

		var first *Occupancy
		for i := range occupied {
			o := &occupied[i]
			if o.Start.Before(slot.End) && o.End.After(slot.Start) {
				if first == nil || o.Start.Before(first.Start) {
					first = o
				}
			}
		}

		if first != nil {
			slot.IsBooked = true
			if privileged {
				name := first.OwnerName
				slot.OccupantName = &name
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

func (s Slot) String() string {
	return fmt.Sprintf("%s-%s booked=%t", s.StartLabel(), s.EndLabel(), s.IsBooked)
}
