package booking

import (
	"math"
	"time"
)

const hoursPerDay = 24

// Overlaps implements the inclusive-boundary overlap rule: an existing range
// [s, e] conflicts with a requested [start, end] iff s <= end AND e >= start.
// Back-to-back bookings that share a boundary date are treated as a conflict.
func Overlaps(s, e, start, end time.Time) bool {
	return !s.After(end) && !e.Before(start)
}

// Days bills a rental in whole days, rounding up: a 25-hour rental is 2 days.
func Days(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / hoursPerDay))
}

// TotalPrice derives the booking price from the item's per-day rate. Rates
// attached to the item are informational and never feed this computation.
func TotalPrice(start, end time.Time, pricePerDay float64) float64 {
	return float64(Days(start, end)) * pricePerDay
}
