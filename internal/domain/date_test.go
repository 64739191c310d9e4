package domain

import (
	"testing"
	"time"
)

func TestDay_KeepsLocalCalendarDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"utc", time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC), "2024-01-01"},
		{"offset midnight", time.Date(2024, 1, 1, 0, 0, 0, 0, ist), "2024-01-01"},
		{"offset morning", time.Date(2024, 1, 1, 10, 0, 0, 0, ist), "2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Day(tt.in)
			if got.Location() != time.UTC {
				t.Errorf("Day(%v) location = %v, want UTC", tt.in, got.Location())
			}
			if key := DayKey(got); key != tt.want {
				t.Errorf("DayKey(Day(%v)) = %q, want %q", tt.in, key, tt.want)
			}
		})
	}
}

func TestDay_Zero(t *testing.T) {
	if !Day(time.Time{}).IsZero() {
		t.Error("Day(zero) should stay zero")
	}
	if DayKey(time.Time{}) != "" {
		t.Error("DayKey(zero) should be empty")
	}
}
