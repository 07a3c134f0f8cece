package utils

import (
	"math"
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// Midnight truncates t to the start of its day in local timezone.
func Midnight(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// HoursUntil returns whole hours from now until t, floored. Negative when t
// is in the past. The difference is taken on the nominal local clock, so a
// DST transition between the two instants does not gain or lose an hour.
func HoursUntil(t, now time.Time) int {
	return int(math.Floor(nominalUTC(t).Sub(nominalUTC(now)).Hours()))
}

// DaysBetween counts calendar nights between two dates, rounding partial
// days up. Computed from date components, so a stay spanning a DST
// transition still counts plain calendar days.
func DaysBetween(from, to time.Time) int {
	return int(math.Ceil(nominalUTC(to).Sub(nominalUTC(from)).Hours() / 24))
}

// nominalUTC re-reads t's local wall-clock fields as a UTC instant. UTC has
// no transitions, so differences between shadows measure clock-face time.
func nominalUTC(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
