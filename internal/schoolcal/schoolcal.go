// Package schoolcal counts school days and school weeks between two
// dates, subtracting weekends and the effective holiday list.
package schoolcal

import (
	"github.com/username/schultage/internal/holiday"
	"github.com/username/schultage/pkg/dateutil"
)

// Result is the breakdown of a day-range calculation.
type Result struct {
	Total           int // calendar days in the range
	Weekdays        int // Monday-Friday days
	HolidayWeekdays int // weekdays covered by holiday intervals
	SchoolDays      int // weekdays minus holiday weekdays, floored at 0
}

// CountWeekdays counts Monday-Friday days in [start, end], or
// [start+1, end] when includeStart is false. Empty or inverted ranges
// and invalid bounds yield 0.
func CountWeekdays(start, end dateutil.Day, includeStart bool) int {
	if !start.Valid() || !end.Valid() {
		return 0
	}
	s := start
	if !includeStart {
		s++
	}
	count := 0
	for d := s; d <= end; d++ {
		if d.IsWeekday() {
			count++
		}
	}
	return count
}

// OverlapWeekdays counts the weekdays in the intersection of the two
// closed ranges. Symmetric in its arguments.
func OverlapWeekdays(aStart, aEnd, bStart, bEnd dateutil.Day) int {
	if !aStart.Valid() || !aEnd.Valid() || !bStart.Valid() || !bEnd.Valid() {
		return 0
	}
	s := aStart
	if bStart > s {
		s = bStart
	}
	e := aEnd
	if bEnd < e {
		e = bEnd
	}
	if s > e {
		return 0
	}
	return CountWeekdays(s, e, true)
}

// Count computes the school-day breakdown for [start, end]. Holiday
// weekday overlap is summed per interval without merging overlapping
// stored intervals, so weekdays covered by two intervals at once are
// subtracted twice.
func Count(start, end dateutil.Day, includeStart bool, holidays holiday.Set) Result {
	if !start.Valid() || !end.Valid() || end < start {
		return Result{}
	}

	total := int(end-start) + btoi(includeStart)
	weekdays := CountWeekdays(start, end, includeStart)

	holidayWeekdays := 0
	for _, h := range holidays {
		holidayWeekdays += OverlapWeekdays(start, end, h.From, h.To)
	}

	schoolDays := weekdays - holidayWeekdays
	if schoolDays < 0 {
		schoolDays = 0
	}

	return Result{
		Total:           total,
		Weekdays:        weekdays,
		HolidayWeekdays: holidayWeekdays,
		SchoolDays:      schoolDays,
	}
}

// RemainingWeeks counts the Monday-anchored weeks between start and
// end that contain at least one school day (a Mon-Fri day inside the
// range that is not a holiday).
func RemainingWeeks(start, end dateutil.Day, holidays holiday.Set) int {
	if !start.Valid() || !end.Valid() || end < start {
		return 0
	}

	weeks := 0
	for monday := start.Monday(); monday <= end; monday += 7 {
		for offset := dateutil.Day(0); offset < 5; offset++ {
			day := monday + offset
			if day > end {
				break
			}
			if day < start {
				continue
			}
			if !holidays.Contains(day) {
				weeks++
				break
			}
		}
	}
	return weeks
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
