package Scheduler

import "time"

// Frequency units accepted by NextDue.
const (
	UnitDay   = "day"
	UnitWeek  = "week"
	UnitMonth = "month"
	UnitYear  = "year"
)

// NextDue adds value units of unit to from using calendar arithmetic.
// Month and year additions follow time.AddDate's normalization (Jan 31
// plus one month rolls into March). A non-positive value counts as 1 and
// an unrecognized unit is treated as months; frequency fields arrive as
// loosely validated client input.
func NextDue(from time.Time, value int, unit string) time.Time {
	if value <= 0 {
		value = 1
	}
	switch unit {
	case UnitDay:
		return from.AddDate(0, 0, value)
	case UnitWeek:
		return from.AddDate(0, 0, value*7)
	case UnitMonth:
		return from.AddDate(0, value, 0)
	case UnitYear:
		return from.AddDate(value, 0, 0)
	default:
		return from.AddDate(0, value, 0)
	}
}
