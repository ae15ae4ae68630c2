package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/username/schultage/internal/timetable"
	"github.com/username/schultage/pkg/dateutil"
)

var weekdayNames = []string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"}

func weekdayName(d dateutil.Day) string {
	return weekdayNames[int(d.Weekday())]
}

// formatDuration renders seconds as "H:MM h".
func formatDuration(seconds float64) string {
	total := int(math.Round(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	return fmt.Sprintf("%d:%02d h", h, m)
}

// formatBlocks renders a fractional block count.
func formatBlocks(blocks float64) string {
	if blocks == math.Trunc(blocks) {
		return fmt.Sprintf("%.0f", blocks)
	}
	return fmt.Sprintf("%.2f", blocks)
}

// parseWeek accepts "A" or "B" in either case.
func parseWeek(s string) (timetable.Week, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return timetable.WeekA, nil
	case "B":
		return timetable.WeekB, nil
	}
	return "", fmt.Errorf("week must be A or B, got %q", s)
}

// parseWeekday accepts a German short name (Mo..Fr) or an index 1-5.
func parseWeekday(s string) (int, error) {
	names := []string{"mo", "di", "mi", "do", "fr"}
	lower := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if lower == n {
			return i, nil
		}
	}
	var idx int
	if _, err := fmt.Sscanf(lower, "%d", &idx); err == nil && idx >= 1 && idx <= 5 {
		return idx - 1, nil
	}
	return 0, fmt.Errorf("weekday must be Mo..Fr or 1-5, got %q", s)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
