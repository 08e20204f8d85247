package health

import (
	"math"

	"github.com/ukydev/fleet-care/internal/models"
)

// Assumed daily consumption per unit type. These are planning heuristics,
// not measured rates.
const (
	HoursPerDay    = 8.0
	DistancePerDay = 100.0
)

// DailyRate returns the assumed daily consumption for a unit type.
func DailyRate(u models.UnitType) float64 {
	if u == models.UnitDistance {
		return DistancePerDay
	}
	return HoursPerDay
}

// Remaining is the usage budget left before the equipment is due, never negative.
func Remaining(eq models.Equipment) float64 {
	r := eq.Interval - Usage(eq)
	if r < 0 {
		return 0
	}
	return r
}

// DaysUntilDue estimates whole days until the equipment reaches its interval.
// ok is false when no interval is configured. A result of 0 means due now.
func DaysUntilDue(eq models.Equipment) (days int, ok bool) {
	if !HasInterval(eq) {
		return 0, false
	}
	remaining := Remaining(eq)
	if remaining == 0 {
		return 0, true
	}
	return int(math.Ceil(remaining / DailyRate(eq.Unit()))), true
}
