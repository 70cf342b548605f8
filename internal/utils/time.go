package utils

import (
	"fmt"
	"time"

	"github.com/nwhitfield/daybook/internal/constants"
)

// ToCalendarDay truncates a timestamp to midnight in its own location.
// All due/overdue/streak comparisons happen at this granularity; time of day
// is never compared.
func ToCalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey formats a timestamp as its calendar-day string (YYYY-MM-DD).
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// AddDays returns the calendar day n days after (or before, if negative) t.
func AddDays(t time.Time, n int) time.Time {
	return ToCalendarDay(t).AddDate(0, 0, n)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ParseCalendarDay parses a YYYY-MM-DD string. Malformed or empty input
// reports ok=false; it never fails hard, downstream logic treats absence as
// "no date".
func ParseCalendarDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(constants.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseTimestamp parses an RFC3339 timestamp, falling back to a bare calendar
// day. Malformed or empty input reports ok=false.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return ParseCalendarDay(s)
}

// FormatDuration renders a second count as MM:SS, or HH:MM:SS once it reaches
// an hour. Negative input clamps to zero.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
