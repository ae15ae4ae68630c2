package timetable

import (
	"math"
	"time"

	"github.com/username/schultage/internal/holiday"
	"github.com/username/schultage/pkg/dateutil"
)

// Options controls one aggregation pass.
type Options struct {
	// IncludeToday counts the current day, prorating slots by the
	// clock. When false the scan effectively begins tomorrow (the
	// caller passes the start day accordingly).
	IncludeToday bool
	// Today is the current day in the fixed timezone.
	Today dateutil.Day
	// ClockSeconds is the current time of day in the fixed timezone,
	// sampled once before the scan. Only consulted for today's slots.
	ClockSeconds int
	// RealDurations switches from nominal slot hours to real clock
	// spans (block mode).
	RealDurations bool
	// FirstSemesterEnd is the last day counting toward subjects
	// flagged as first-semester-only.
	FirstSemesterEnd dateutil.Day
}

// Result is the aggregated remaining time. Maps are keyed by subject
// display name and contain no zero-second entries.
type Result struct {
	TotalSeconds   float64
	SubjectSeconds map[string]float64
	TotalBlocks    float64
	SubjectBlocks  map[string]float64
}

func emptyResult() Result {
	return Result{
		SubjectSeconds: map[string]float64{},
		SubjectBlocks:  map[string]float64{},
	}
}

// FirstSemesterEnd computes the Dec 19 boundary of the school year's
// first half. School years spanning new year place the boundary in
// the calendar year before the end date's when the end date falls in
// January through March.
func FirstSemesterEnd(end dateutil.Day) dateutil.Day {
	if !end.Valid() {
		return dateutil.InvalidDay
	}
	t := end.Time()
	year := t.Year()
	if t.Month() <= time.March {
		year--
	}
	return dateutil.DayOf(time.Date(year, time.December, 19, 0, 0, 0, 0, time.UTC))
}

// Aggregate walks every school day from start through end, resolves
// the rotation week per day and sums scheduled slot durations into
// per-subject and total seconds plus fractional block counts.
//
// Without a valid reference date the result is empty: the rotation
// cannot be anchored, so no hours can be attributed.
func Aggregate(t *Timetable, slots []Slot, reference, start, end dateutil.Day, holidays holiday.Set, opts Options) Result {
	res := emptyResult()
	if t == nil || !reference.Valid() || !start.Valid() || !end.Valid() {
		return res
	}

	names := make(map[string]string, len(t.Subjects)) // cell ref -> display name
	for _, s := range t.Subjects {
		names[s.ID.String()] = s.Name
		res.SubjectSeconds[s.Name] = 0
		res.SubjectBlocks[s.Name] = 0
	}
	semesterOnly := make(map[string]bool, len(t.Settings))
	for id, st := range t.Settings {
		if st.OnlyFirstSemester {
			semesterOnly[id.String()] = true
		}
	}

	for day := start; day <= end; day++ {
		if day.IsWeekend() {
			continue
		}
		if holidays.Contains(day) {
			continue
		}

		ws := t.Schedule(ActiveWeek(reference, day))
		weekdayIndex := int(day.Weekday()) - 1 // Monday(1) -> 0 .. Friday(5) -> 4
		if weekdayIndex < 0 || weekdayIndex >= len(ws.Cells) {
			continue
		}
		row := ws.Cells[weekdayIndex]

		inFirstSemester := opts.FirstSemesterEnd.Valid() && day <= opts.FirstSemesterEnd
		isToday := opts.IncludeToday && day == opts.Today

		for slotIndex, slot := range slots {
			if slotIndex >= len(row) {
				break
			}
			ref := row[slotIndex]
			if ref == "" {
				continue
			}
			name, known := names[ref]
			if !known {
				continue // stale reference, treated as empty
			}
			if semesterOnly[ref] && !inFirstSemester {
				continue
			}

			actual := float64(slot.RealSeconds())
			full := actual
			if !opts.RealDurations {
				full = slot.NominalSeconds()
			}

			seconds := full
			blocks := 1.0
			if isToday {
				ratio := remainingRatio(slot, opts.ClockSeconds, actual)
				seconds = math.Round(full * ratio)
				blocks = ratio
			}
			if seconds <= 0 {
				continue
			}

			res.SubjectSeconds[name] += seconds
			res.TotalSeconds += seconds
			res.SubjectBlocks[name] += blocks
			res.TotalBlocks += blocks
		}
	}

	for name, secs := range res.SubjectSeconds {
		if secs == 0 {
			delete(res.SubjectSeconds, name)
			delete(res.SubjectBlocks, name)
		}
	}

	return res
}

// remainingRatio is the fraction of the slot still ahead of the
// clock: 0 once the slot has ended, 1 before it starts, linear in
// between, clamped to [0, 1].
func remainingRatio(slot Slot, clockSeconds int, actualSeconds float64) float64 {
	startSec := slot.Start * 60
	endSec := slot.End * 60

	var ratio float64
	switch {
	case clockSeconds >= endSec:
		ratio = 0
	case clockSeconds <= startSec:
		ratio = 1
	default:
		ratio = float64(endSec-clockSeconds) / actualSeconds
	}
	return math.Max(0, math.Min(1, ratio))
}
