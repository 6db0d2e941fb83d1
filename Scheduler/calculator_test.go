package Scheduler

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 10, 30, 0, 0, time.UTC)
}

func TestNextDueUnits(t *testing.T) {
	from := date(2024, time.March, 10)

	tests := []struct {
		name  string
		value int
		unit  string
		want  time.Time
	}{
		{"single day", 1, UnitDay, date(2024, time.March, 11)},
		{"multiple days", 10, UnitDay, date(2024, time.March, 20)},
		{"single week", 1, UnitWeek, date(2024, time.March, 17)},
		{"multiple weeks", 3, UnitWeek, date(2024, time.March, 31)},
		{"single month", 1, UnitMonth, date(2024, time.April, 10)},
		{"multiple months", 6, UnitMonth, date(2024, time.September, 10)},
		{"single year", 1, UnitYear, date(2025, time.March, 10)},
		{"unknown unit falls back to months", 2, "fortnight", date(2024, time.May, 10)},
		{"zero value counts as one", 0, UnitDay, date(2024, time.March, 11)},
		{"negative value counts as one", -4, UnitWeek, date(2024, time.March, 17)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NextDue(from, tc.value, tc.unit)
			if !got.Equal(tc.want) {
				t.Errorf("NextDue(%v, %d, %q) = %v, want %v", from, tc.value, tc.unit, got, tc.want)
			}
		})
	}
}

func TestNextDueCalendarNormalization(t *testing.T) {
	// Jan 31 has no counterpart in February; AddDate rolls the overflow
	// into March.
	got := NextDue(date(2024, time.January, 31), 1, UnitMonth)
	want := date(2024, time.March, 2)
	if !got.Equal(want) {
		t.Errorf("Jan 31 + 1 month = %v, want %v", got, want)
	}

	// Leap day plus one year lands on Mar 1 of the non-leap year.
	got = NextDue(date(2024, time.February, 29), 1, UnitYear)
	want = date(2025, time.March, 1)
	if !got.Equal(want) {
		t.Errorf("Feb 29 + 1 year = %v, want %v", got, want)
	}
}

func TestNextDuePreservesTimeOfDay(t *testing.T) {
	from := time.Date(2024, time.June, 1, 23, 45, 12, 0, time.UTC)
	got := NextDue(from, 2, UnitDay)
	if got.Hour() != 23 || got.Minute() != 45 || got.Second() != 12 {
		t.Errorf("time of day not preserved: got %v", got)
	}
}
