package dateutil

import (
	"math"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Day is a calendar date expressed as days since the Unix epoch,
// derived from the civil date alone (no time-of-day, UTC-based).
// The difference of two Day values is the count of calendar days
// between the corresponding dates.
type Day int

// InvalidDay is the sentinel returned for absent or malformed dates.
const InvalidDay Day = math.MinInt32

// Valid reports whether d represents a real date.
func (d Day) Valid() bool {
	return d != InvalidDay
}

// ParseDay parses a "YYYY-MM-DD" string. Returns InvalidDay when the
// input is empty or malformed instead of an error, so downstream
// arithmetic degrades to zero results rather than failing.
func ParseDay(ymd string) Day {
	if ymd == "" {
		return InvalidDay
	}
	t, err := time.Parse("2006-01-02", ymd)
	if err != nil {
		return InvalidDay
	}
	return DayOf(t)
}

// DayOf converts a time.Time to a Day using its civil date in its own
// location. Wall-clock time is discarded.
func DayOf(t time.Time) Day {
	utc := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Day(utc.Unix() / secondsPerDay)
}

// Today resolves the date of the given instant in a fixed timezone.
// The result is identical regardless of where the process runs.
func Today(now time.Time, loc *time.Location) Day {
	return DayOf(now.In(loc))
}

// Time returns the midnight UTC instant of the date.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// Format returns the date as "YYYY-MM-DD", or "" for InvalidDay.
func (d Day) Format() string {
	if !d.Valid() {
		return ""
	}
	return d.Time().Format("2006-01-02")
}

// Weekday returns the day of week. Day 0 (1970-01-01) was a Thursday.
func (d Day) Weekday() time.Weekday {
	w := (int(d)%7 + 7 + int(time.Thursday)) % 7
	return time.Weekday(w)
}

// IsWeekend returns true for Saturday and Sunday.
func (d Day) IsWeekend() bool {
	w := d.Weekday()
	return w == time.Saturday || w == time.Sunday
}

// IsWeekday returns true for Monday through Friday.
func (d Day) IsWeekday() bool {
	return !d.IsWeekend()
}

// Monday returns the Monday on or before d.
func (d Day) Monday() Day {
	offset := (int(d.Weekday()) + 6) % 7 // Sunday(0) -> 6, Monday(1) -> 0
	return d - Day(offset)
}

// ClockSeconds returns the seconds elapsed since midnight of the
// given instant in a fixed timezone.
func ClockSeconds(now time.Time, loc *time.Location) int {
	local := now.In(loc)
	return local.Hour()*3600 + local.Minute()*60 + local.Second()
}

// IsSameDay returns true if two instants fall on the same civil date.
func IsSameDay(a, b time.Time) bool {
	return DayOf(a) == DayOf(b)
}
