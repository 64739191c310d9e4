package domain

import "time"

// DateLayout is the canonical textual form of a calendar day.
const DateLayout = "2006-01-02"

// Day returns the calendar day of t in its own location, as midnight UTC.
// An offset timestamp keeps its local date. The zero time stays zero.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey returns the grouping key of a calendar day, or "" for a missing day.
func DayKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
