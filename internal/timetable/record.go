package timetable

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// CurrentVersion is stamped on every record this build writes.
const CurrentVersion = 1

// RecordSubject is one subject in the interchange format.
type RecordSubject struct {
	Name string `json:"name"`
}

// RecordWeek is one weekly grid in the interchange format. Cells hold
// subject names, "" for empty.
type RecordWeek struct {
	Schedule [][]string `json:"schedule"`
}

// RecordSettings are per-subject options in the interchange format.
type RecordSettings struct {
	OnlyFirstSemester bool `json:"onlyFirstSemester"`
}

// Record is the persisted and exported timetable shape. It joins on
// subject names so exports stay human-editable; the stable IDs live
// only inside the process.
type Record struct {
	Version         int                       `json:"version,omitempty"`
	Subjects        []RecordSubject           `json:"subjects"`
	WeekA           RecordWeek                `json:"weekA"`
	WeekB           RecordWeek                `json:"weekB"`
	SubjectSettings map[string]RecordSettings `json:"subjectSettings"`
}

// NewRecord returns an empty record with 5xslotCount grids.
func NewRecord(slotCount int) *Record {
	return &Record{
		Version:         CurrentVersion,
		Subjects:        []RecordSubject{},
		WeekA:           RecordWeek{Schedule: emptyRecordSchedule(slotCount)},
		WeekB:           RecordWeek{Schedule: emptyRecordSchedule(slotCount)},
		SubjectSettings: map[string]RecordSettings{},
	}
}

func emptyRecordSchedule(slotCount int) [][]string {
	schedule := make([][]string, NumWeekdays)
	for i := range schedule {
		schedule[i] = make([]string, slotCount)
	}
	return schedule
}

// DecodeRecord parses a stored or imported timetable. It never fails:
// unparseable input yields an empty record and corrupt fields are
// replaced by their zero shape. Two legacy layouts are migrated, the
// array-based weeks of the earliest builds (subject names survive, the
// grids do not) and per-week onlyFirstSemester maps that predate
// subjectSettings.
func DecodeRecord(data []byte, slotCount int) *Record {
	rec := NewRecord(slotCount)
	if len(data) == 0 {
		return rec
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return rec
	}

	var version int
	if raw, ok := fields["version"]; ok {
		_ = json.Unmarshal(raw, &version)
		rec.Version = version
	}

	if raw, ok := fields["subjects"]; ok {
		var subjects []RecordSubject
		if json.Unmarshal(raw, &subjects) == nil {
			rec.Subjects = subjects
		}
	}
	if raw, ok := fields["subjectSettings"]; ok {
		var settings map[string]RecordSettings
		if json.Unmarshal(raw, &settings) == nil && settings != nil {
			rec.SubjectSettings = settings
		}
	}

	legacyNames := decodeWeek(fields["weekA"], &rec.WeekA, rec.SubjectSettings)
	legacyNames = append(legacyNames, decodeWeek(fields["weekB"], &rec.WeekB, rec.SubjectSettings)...)

	if len(legacyNames) > 0 {
		// Earliest layout stored the weeks as subject arrays. Recover
		// the names, the schedules start over empty.
		seen := make(map[string]bool, len(rec.Subjects))
		for _, s := range rec.Subjects {
			seen[s.Name] = true
		}
		for _, name := range legacyNames {
			if name != "" && !seen[name] {
				seen[name] = true
				rec.Subjects = append(rec.Subjects, RecordSubject{Name: name})
			}
		}
		rec.WeekA = RecordWeek{Schedule: emptyRecordSchedule(slotCount)}
		rec.WeekB = RecordWeek{Schedule: emptyRecordSchedule(slotCount)}
	}

	rec.Sanitize(slotCount)
	return rec
}

// decodeWeek fills dst from the raw week value. For the legacy array
// layout it returns the subject names found there instead.
func decodeWeek(raw json.RawMessage, dst *RecordWeek, settings map[string]RecordSettings) []string {
	if len(raw) == 0 {
		return nil
	}

	var legacy []RecordSubject
	if json.Unmarshal(raw, &legacy) == nil {
		names := make([]string, 0, len(legacy))
		for _, s := range legacy {
			names = append(names, strings.TrimSpace(s.Name))
		}
		return names
	}

	var week struct {
		Schedule          [][]string      `json:"schedule"`
		OnlyFirstSemester map[string]bool `json:"onlyFirstSemester"`
	}
	if json.Unmarshal(raw, &week) != nil {
		return nil
	}
	if week.Schedule != nil {
		dst.Schedule = week.Schedule
	}
	for name, flag := range week.OnlyFirstSemester {
		if flag {
			settings[name] = RecordSettings{OnlyFirstSemester: true}
		}
	}
	return nil
}

// Sanitize trims subject names, drops empty and duplicate subjects,
// forces both grids to 5xslotCount (older records carry five slots and
// are padded on the right) and blanks cells naming unknown subjects.
func (r *Record) Sanitize(slotCount int) {
	if r.SubjectSettings == nil {
		r.SubjectSettings = map[string]RecordSettings{}
	}

	seen := make(map[string]bool, len(r.Subjects))
	subjects := make([]RecordSubject, 0, len(r.Subjects))
	for _, s := range r.Subjects {
		name := strings.TrimSpace(s.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		subjects = append(subjects, RecordSubject{Name: name})
	}
	r.Subjects = subjects

	for name := range r.SubjectSettings {
		if !seen[name] {
			delete(r.SubjectSettings, name)
		}
	}

	for _, week := range []*RecordWeek{&r.WeekA, &r.WeekB} {
		schedule := emptyRecordSchedule(slotCount)
		for d := 0; d < NumWeekdays && d < len(week.Schedule); d++ {
			for s := 0; s < slotCount && s < len(week.Schedule[d]); s++ {
				name := strings.TrimSpace(week.Schedule[d][s])
				if seen[name] {
					schedule[d][s] = name
				}
			}
		}
		week.Schedule = schedule
	}
}

// Encode serializes the record with the current version stamped.
func (r *Record) Encode() ([]byte, error) {
	r.Version = CurrentVersion
	return json.MarshalIndent(r, "", "  ")
}

// Timetable converts the name-keyed record into the in-memory model,
// minting a fresh stable ID per subject.
func (r *Record) Timetable(slotCount int) *Timetable {
	t := New(slotCount)
	ids := make(map[string]uuid.UUID, len(r.Subjects))
	for _, s := range r.Subjects {
		sub := Subject{ID: uuid.New(), Name: s.Name}
		t.Subjects = append(t.Subjects, sub)
		ids[s.Name] = sub.ID
	}
	for name, st := range r.SubjectSettings {
		if id, ok := ids[name]; ok {
			t.Settings[id] = Settings{OnlyFirstSemester: st.OnlyFirstSemester}
		}
	}

	fill := func(src RecordWeek, dst *WeekSchedule) {
		for d := 0; d < NumWeekdays && d < len(src.Schedule); d++ {
			for s := 0; s < slotCount && s < len(src.Schedule[d]); s++ {
				if id, ok := ids[src.Schedule[d][s]]; ok {
					dst.Cells[d][s] = id.String()
				}
			}
		}
	}
	fill(r.WeekA, &t.WeekA)
	fill(r.WeekB, &t.WeekB)
	return t
}

// Record converts the in-memory model back to the name-keyed
// interchange shape. Stale cell references become empty cells.
func (t *Timetable) Record(slotCount int) *Record {
	rec := NewRecord(slotCount)
	names := make(map[string]string, len(t.Subjects))
	for _, s := range t.Subjects {
		names[s.ID.String()] = s.Name
		rec.Subjects = append(rec.Subjects, RecordSubject{Name: s.Name})
	}
	for id, st := range t.Settings {
		if name, ok := names[id.String()]; ok && st.OnlyFirstSemester {
			rec.SubjectSettings[name] = RecordSettings{OnlyFirstSemester: true}
		}
	}

	fill := func(src WeekSchedule, dst *RecordWeek) {
		for d := 0; d < NumWeekdays && d < len(src.Cells); d++ {
			for s := 0; s < slotCount && s < len(src.Cells[d]); s++ {
				if name, ok := names[src.Cells[d][s]]; ok {
					dst.Schedule[d][s] = name
				}
			}
		}
	}
	fill(t.WeekA, &rec.WeekA)
	fill(t.WeekB, &rec.WeekB)
	return rec
}
