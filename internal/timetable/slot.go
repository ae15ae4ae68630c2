package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot is one fixed daily class period. Start and End are minutes
// from midnight; NominalHours is the accounting duration used in time
// mode, which may differ from the real clock span.
type Slot struct {
	Name         string
	Start        int
	End          int
	NominalHours float64
}

// RealSeconds is the clock duration of the slot, floored at one
// minute to keep proration well-defined.
func (s Slot) RealSeconds() int {
	d := (s.End - s.Start) * 60
	if d < 60 {
		return 60
	}
	return d
}

// NominalSeconds is the configured accounting duration.
func (s Slot) NominalSeconds() float64 {
	return s.NominalHours * 3600
}

// TimeRange formats the slot bounds as "H:MM-H:MM".
func (s Slot) TimeRange() string {
	return fmt.Sprintf("%d:%02d-%d:%02d", s.Start/60, s.Start%60, s.End/60, s.End%60)
}

// ParseClock parses "H:MM" or "HH:MM" into minutes from midnight.
func ParseClock(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", hhmm)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return h*60 + m, nil
}

// DefaultSlots is the seven-block school day: six 55-minute blocks
// and one 35-minute block.
func DefaultSlots() []Slot {
	return []Slot{
		{Name: "1. Block", Start: 7*60 + 50, End: 8*60 + 45, NominalHours: 0.92},
		{Name: "2. Block", Start: 8*60 + 50, End: 9*60 + 45, NominalHours: 0.92},
		{Name: "3. Block", Start: 10*60 + 5, End: 11 * 60, NominalHours: 0.92},
		{Name: "4. Block", Start: 11*60 + 5, End: 12 * 60, NominalHours: 0.92},
		{Name: "5. Block", Start: 12*60 + 20, End: 13*60 + 15, NominalHours: 0.92},
		{Name: "6. Block", Start: 14 * 60, End: 14*60 + 35, NominalHours: 0.58},
		{Name: "7. Block", Start: 14*60 + 35, End: 15*60 + 30, NominalHours: 0.92},
	}
}
