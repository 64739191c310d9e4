package normalization

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layouts tried, in order, for textual dates and timestamps. Ambiguous
// numeric forms are read month-first.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"01-02-2006 15:04:05",
	"01-02-2006 15:04",
	"01-02-2006",
	"02-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// parseTime parses a textual date/time. ok is false for empty or unparseable input.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var thousandsPattern = regexp.MustCompile(`^[-+]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// parseNumber parses a numeric cell. Empty, NaN and infinite values are missing.
// Comma thousands separators ("1,234.5") and a leading currency sign are accepted.
func parseNumber(s string) (v float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.TrimPrefix(s, "$")
	if thousandsPattern.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// isMissingToken reports cells that stand for "no value" rather than bad data.
func isMissingToken(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "null", "none", "n/a", "na", "-":
		return true
	}
	return false
}

// epochColumn reports whether every non-missing cell is numeric and, if so,
// the mean of the values. A column with no values is not numeric.
func epochColumn(cells []string) (numeric bool, mean float64) {
	var sum float64
	n := 0
	for _, c := range cells {
		if isMissingToken(c) {
			continue
		}
		v, ok := parseNumber(c)
		if !ok {
			return false, 0
		}
		sum += v
		n++
	}
	if n == 0 {
		return false, 0
	}
	return true, sum / float64(n)
}

// fromEpoch converts an epoch value in the given unit to a UTC instant.
func fromEpoch(v float64, unit string) (time.Time, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return time.Time{}, false
	}
	if unit == UnitMilliseconds {
		v /= 1000
	}
	// Beyond year 9999 the value is not a plausible timestamp.
	if math.Abs(v) > 253402300799 {
		return time.Time{}, false
	}
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC(), true
}
