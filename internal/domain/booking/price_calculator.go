package booking

type PriceCalculator interface {
	CalculatePriceCents(slot TimeSlot) int64
}

// DefaultPriceCalculator charges a flat hourly rate, prorated by the minute.
type DefaultPriceCalculator struct {
	HourlyRateCents int64
}

func NewDefaultPriceCalculator(hourlyRateCents int64) *DefaultPriceCalculator {
	return &DefaultPriceCalculator{
		HourlyRateCents: hourlyRateCents,
	}
}

func (pc *DefaultPriceCalculator) CalculatePriceCents(slot TimeSlot) int64 {
	minutes := int64(slot.Duration().Minutes())
	return minutes * pc.HourlyRateCents / 60
}
