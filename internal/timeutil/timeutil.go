package timeutil

import "time"

// DayRange returns the half-open interval [start, end) covering firstDay through lastDay
// of month in year, in loc.
func DayRange(year int, month time.Month, firstDay, lastDay int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, firstDay, 0, 0, 0, 0, loc)
	end := time.Date(year, month, lastDay+1, 0, 0, 0, 0, loc)
	return start, end
}

// Within reports whether t lies in [start, end).
func Within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
