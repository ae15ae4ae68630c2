// Package timetable models the two-week rotating subject schedule and
// aggregates remaining class time over a date range.
package timetable

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NumWeekdays is the number of schedulable days per week (Mon-Fri).
const NumWeekdays = 5

// Week names one of the two alternating weekly schedules.
type Week string

const (
	WeekA Week = "A"
	WeekB Week = "B"
)

// Subject is a school subject. The ID is the stable join key used by
// schedule cells and settings; the display name can change freely
// without any cascading rewrites.
type Subject struct {
	ID   uuid.UUID
	Name string
}

// Settings holds per-subject accounting options.
type Settings struct {
	OnlyFirstSemester bool
}

// WeekSchedule is a 5xN grid of subject IDs (uuid strings, "" for an
// empty cell): Cells[weekday][slot].
type WeekSchedule struct {
	Cells [][]string
}

// Timetable is the full two-week rotation: subjects, both weekly
// grids and per-subject settings keyed by subject ID.
type Timetable struct {
	Subjects []Subject
	WeekA    WeekSchedule
	WeekB    WeekSchedule
	Settings map[uuid.UUID]Settings
}

// New returns an empty timetable with 5xslotCount grids.
func New(slotCount int) *Timetable {
	return &Timetable{
		Subjects: []Subject{},
		WeekA:    emptySchedule(slotCount),
		WeekB:    emptySchedule(slotCount),
		Settings: map[uuid.UUID]Settings{},
	}
}

func emptySchedule(slotCount int) WeekSchedule {
	cells := make([][]string, NumWeekdays)
	for i := range cells {
		cells[i] = make([]string, slotCount)
	}
	return WeekSchedule{Cells: cells}
}

// Schedule returns the grid for the given rotation week. Unknown
// values fall back to week A.
func (t *Timetable) Schedule(w Week) *WeekSchedule {
	if w == WeekB {
		return &t.WeekB
	}
	return &t.WeekA
}

// SubjectByName finds a subject by display name (trimmed).
func (t *Timetable) SubjectByName(name string) (Subject, bool) {
	name = strings.TrimSpace(name)
	for _, s := range t.Subjects {
		if s.Name == name {
			return s, true
		}
	}
	return Subject{}, false
}

// SubjectByID finds a subject by its stable identifier.
func (t *Timetable) SubjectByID(id uuid.UUID) (Subject, bool) {
	for _, s := range t.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// AddSubject registers a new subject. Duplicate display names are
// rejected since the interchange format joins on names.
func (t *Timetable) AddSubject(name string) (Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Subject{}, fmt.Errorf("subject name is required")
	}
	if _, exists := t.SubjectByName(name); exists {
		return Subject{}, fmt.Errorf("subject %q already exists", name)
	}
	s := Subject{ID: uuid.New(), Name: name}
	t.Subjects = append(t.Subjects, s)
	return s, nil
}

// RenameSubject changes the display name. Cells and settings refer to
// the ID, so nothing else moves.
func (t *Timetable) RenameSubject(id uuid.UUID, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("subject name is required")
	}
	if other, exists := t.SubjectByName(newName); exists && other.ID != id {
		return fmt.Errorf("subject %q already exists", newName)
	}
	for i := range t.Subjects {
		if t.Subjects[i].ID == id {
			t.Subjects[i].Name = newName
			return nil
		}
	}
	return fmt.Errorf("unknown subject")
}

// RemoveSubject deletes the subject, clears every cell referencing it
// and drops its settings.
func (t *Timetable) RemoveSubject(id uuid.UUID) {
	kept := make([]Subject, 0, len(t.Subjects))
	for _, s := range t.Subjects {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	t.Subjects = kept
	delete(t.Settings, id)

	ref := id.String()
	for _, ws := range []*WeekSchedule{&t.WeekA, &t.WeekB} {
		for d := range ws.Cells {
			for s := range ws.Cells[d] {
				if ws.Cells[d][s] == ref {
					ws.Cells[d][s] = ""
				}
			}
		}
	}
}

// SetSetting stores the per-subject options.
func (t *Timetable) SetSetting(id uuid.UUID, s Settings) {
	if t.Settings == nil {
		t.Settings = map[uuid.UUID]Settings{}
	}
	t.Settings[id] = s
}

// SetCell assigns a subject to a cell; a nil id clears the cell.
func (t *Timetable) SetCell(w Week, weekday, slot int, id *uuid.UUID) error {
	ws := t.Schedule(w)
	if weekday < 0 || weekday >= len(ws.Cells) {
		return fmt.Errorf("weekday index %d out of range", weekday)
	}
	if slot < 0 || slot >= len(ws.Cells[weekday]) {
		return fmt.Errorf("slot index %d out of range", slot)
	}
	if id == nil {
		ws.Cells[weekday][slot] = ""
		return nil
	}
	if _, ok := t.SubjectByID(*id); !ok {
		return fmt.Errorf("unknown subject")
	}
	ws.Cells[weekday][slot] = id.String()
	return nil
}

// CopyWeek replaces the destination grid with a deep copy of the
// source grid.
func (t *Timetable) CopyWeek(from, to Week) {
	if from == to {
		return
	}
	src := t.Schedule(from)
	dst := t.Schedule(to)
	cells := make([][]string, len(src.Cells))
	for i := range src.Cells {
		cells[i] = append([]string(nil), src.Cells[i]...)
	}
	dst.Cells = cells
}

// ClearWeek empties every cell of the given grid.
func (t *Timetable) ClearWeek(w Week) {
	ws := t.Schedule(w)
	for d := range ws.Cells {
		for s := range ws.Cells[d] {
			ws.Cells[d][s] = ""
		}
	}
}

// Normalize forces both grids to 5xslotCount and blanks cells whose
// subject no longer exists. Stale references are not an error; they
// appear when records from older builds or foreign imports are
// loaded.
func (t *Timetable) Normalize(slotCount int) {
	if t.Settings == nil {
		t.Settings = map[uuid.UUID]Settings{}
	}
	known := make(map[string]bool, len(t.Subjects))
	for _, s := range t.Subjects {
		known[s.ID.String()] = true
	}

	for _, ws := range []*WeekSchedule{&t.WeekA, &t.WeekB} {
		cells := make([][]string, NumWeekdays)
		for d := 0; d < NumWeekdays; d++ {
			cells[d] = make([]string, slotCount)
			if d >= len(ws.Cells) {
				continue
			}
			for s := 0; s < slotCount && s < len(ws.Cells[d]); s++ {
				if v := ws.Cells[d][s]; v != "" && known[v] {
					cells[d][s] = v
				}
			}
		}
		ws.Cells = cells
	}
}
