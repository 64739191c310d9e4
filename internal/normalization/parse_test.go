package normalization

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"12.5", 12.5, true},
		{" -3 ", -3, true},
		{"1,234,567.25", 1234567.25, true},
		{"$40", 40, true},
		{"1e3", 1000, true},
		{"1,5", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		assert.Equal(t, tt.wantOK, ok, "parseNumber(%q)", tt.in)
		assert.Equal(t, tt.want, got, "parseNumber(%q)", tt.in)
	}
}

func TestEpochColumn(t *testing.T) {
	numeric, mean := epochColumn([]string{"10", "", "nan", "20"})
	assert.True(t, numeric)
	assert.Equal(t, 15.0, mean)

	numeric, _ = epochColumn([]string{"10", "2024-01-01"})
	assert.False(t, numeric)

	numeric, _ = epochColumn([]string{"", ""})
	assert.False(t, numeric, "a column without values is not numeric")
}

func TestFromEpoch(t *testing.T) {
	ts, ok := fromEpoch(1700000000, UnitSeconds)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), ts)

	ts, ok = fromEpoch(1700000000500, UnitMilliseconds)
	assert.True(t, ok)
	assert.Equal(t, 500*time.Millisecond, time.Duration(ts.Nanosecond()))

	_, ok = fromEpoch(1e20, UnitSeconds)
	assert.False(t, ok)
}

func TestParseTime(t *testing.T) {
	ts, ok := parseTime("2024-02-29 23:59:59")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), ts)

	_, ok = parseTime("2024-02-30")
	assert.False(t, ok)

	_, ok = parseTime("   ")
	assert.False(t, ok)
}
