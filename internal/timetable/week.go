package timetable

import "github.com/username/schultage/pkg/dateutil"

// ActiveWeek resolves which rotation week applies to the target date.
// The reference date is a day known to lie in week A. Without a valid
// reference, or for targets before it, the answer defaults to A.
//
// The parity is taken over whole-week offsets between the Mondays of
// the two weeks, so every day of the reference week is A regardless
// of which weekday the reference points at.
func ActiveWeek(reference, target dateutil.Day) Week {
	if !reference.Valid() || !target.Valid() || target < reference {
		return WeekA
	}
	weeks := (target.Monday() - reference.Monday()) / 7
	if weeks%2 == 0 {
		return WeekA
	}
	return WeekB
}
