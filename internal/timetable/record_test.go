package timetable

import (
	"testing"
)

func TestDecodeRecordEmptyAndGarbage(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"not json", "not json at all"},
		{"json array", `[1, 2, 3]`},
		{"null fields", `{"subjects": null, "weekA": null, "subjectSettings": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := DecodeRecord([]byte(tt.data), 7)
			if len(rec.Subjects) != 0 {
				t.Errorf("subjects = %d, want 0", len(rec.Subjects))
			}
			if len(rec.WeekA.Schedule) != NumWeekdays || len(rec.WeekA.Schedule[0]) != 7 {
				t.Errorf("weekA grid = %dx%d, want 5x7",
					len(rec.WeekA.Schedule), len(rec.WeekA.Schedule[0]))
			}
			if rec.SubjectSettings == nil {
				t.Error("subjectSettings is nil")
			}
		})
	}
}

func TestDecodeRecordCurrentShape(t *testing.T) {
	data := `{
		"version": 1,
		"subjects": [{"name": "Mathe"}, {"name": "Deutsch"}],
		"weekA": {"schedule": [["Mathe", "", "", "", "", "", ""], ["", "Deutsch", "", "", "", "", ""]]},
		"weekB": {"schedule": []},
		"subjectSettings": {"Deutsch": {"onlyFirstSemester": true}}
	}`

	rec := DecodeRecord([]byte(data), 7)

	if len(rec.Subjects) != 2 {
		t.Fatalf("subjects = %d, want 2", len(rec.Subjects))
	}
	if rec.WeekA.Schedule[0][0] != "Mathe" {
		t.Errorf("weekA[0][0] = %q, want Mathe", rec.WeekA.Schedule[0][0])
	}
	if rec.WeekA.Schedule[1][1] != "Deutsch" {
		t.Errorf("weekA[1][1] = %q, want Deutsch", rec.WeekA.Schedule[1][1])
	}
	if !rec.SubjectSettings["Deutsch"].OnlyFirstSemester {
		t.Error("onlyFirstSemester flag lost")
	}
	// Partial rows are padded to the full grid.
	if len(rec.WeekA.Schedule) != NumWeekdays {
		t.Errorf("weekA rows = %d, want %d", len(rec.WeekA.Schedule), NumWeekdays)
	}
}

func TestDecodeRecordLegacyArrayWeeks(t *testing.T) {
	// The earliest builds stored the weeks as arrays of subjects. The
	// names are recovered, the grids start over empty.
	data := `{
		"weekA": [{"name": "Mathe"}, {"name": " Deutsch "}],
		"weekB": [{"name": "Mathe"}, {"name": "Sport"}]
	}`

	rec := DecodeRecord([]byte(data), 7)

	names := make([]string, len(rec.Subjects))
	for i, s := range rec.Subjects {
		names[i] = s.Name
	}
	want := []string{"Mathe", "Deutsch", "Sport"}
	if len(names) != len(want) {
		t.Fatalf("subjects = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("subjects[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	for d := range rec.WeekA.Schedule {
		for s := range rec.WeekA.Schedule[d] {
			if rec.WeekA.Schedule[d][s] != "" {
				t.Fatalf("migrated grid not empty at [%d][%d]", d, s)
			}
		}
	}
}

func TestDecodeRecordLegacySemesterFlags(t *testing.T) {
	// onlyFirstSemester used to live inside the week objects.
	data := `{
		"subjects": [{"name": "Kunst"}, {"name": "Musik"}],
		"weekA": {"schedule": [], "onlyFirstSemester": {"Kunst": true, "Musik": false}},
		"weekB": {"schedule": [], "onlyFirstSemester": {"Musik": true}}
	}`

	rec := DecodeRecord([]byte(data), 7)

	if !rec.SubjectSettings["Kunst"].OnlyFirstSemester {
		t.Error("Kunst flag from weekA not migrated")
	}
	if !rec.SubjectSettings["Musik"].OnlyFirstSemester {
		t.Error("Musik flag from weekB not migrated")
	}
}

func TestDecodeRecordPadsFiveSlotGrids(t *testing.T) {
	data := `{
		"subjects": [{"name": "Mathe"}],
		"weekA": {"schedule": [
			["Mathe", "", "", "", "Mathe"],
			["", "", "", "", ""],
			["", "", "", "", ""],
			["", "", "", "", ""],
			["", "", "", "", ""]
		]}
	}`

	rec := DecodeRecord([]byte(data), 7)

	if got := len(rec.WeekA.Schedule[0]); got != 7 {
		t.Fatalf("slots = %d, want 7", got)
	}
	if rec.WeekA.Schedule[0][0] != "Mathe" || rec.WeekA.Schedule[0][4] != "Mathe" {
		t.Error("existing cells lost during padding")
	}
	if rec.WeekA.Schedule[0][5] != "" || rec.WeekA.Schedule[0][6] != "" {
		t.Error("padded cells not empty")
	}
}

func TestSanitizeDropsUnknownAndDuplicate(t *testing.T) {
	rec := NewRecord(7)
	rec.Subjects = []RecordSubject{
		{Name: " Mathe "},
		{Name: "Mathe"},
		{Name: ""},
		{Name: "Deutsch"},
	}
	rec.WeekA.Schedule[0][0] = "Mathe"
	rec.WeekA.Schedule[0][1] = "Erdkunde" // never declared
	rec.SubjectSettings["Erdkunde"] = RecordSettings{OnlyFirstSemester: true}

	rec.Sanitize(7)

	if len(rec.Subjects) != 2 {
		t.Fatalf("subjects = %d, want 2", len(rec.Subjects))
	}
	if rec.WeekA.Schedule[0][0] != "Mathe" {
		t.Error("valid cell cleared")
	}
	if rec.WeekA.Schedule[0][1] != "" {
		t.Error("unknown subject cell kept")
	}
	if _, ok := rec.SubjectSettings["Erdkunde"]; ok {
		t.Error("settings for unknown subject kept")
	}
}

func TestRecordTimetableRoundTrip(t *testing.T) {
	rec := NewRecord(7)
	rec.Subjects = []RecordSubject{{Name: "Mathe"}, {Name: "Deutsch"}}
	rec.WeekA.Schedule[0][0] = "Mathe"
	rec.WeekB.Schedule[4][6] = "Deutsch"
	rec.SubjectSettings["Mathe"] = RecordSettings{OnlyFirstSemester: true}

	tt := rec.Timetable(7)
	back := tt.Record(7)

	encoded1, err := rec.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	encoded2, err := back.Encode()
	if err != nil {
		t.Fatalf("Encode round trip: %v", err)
	}
	if string(encoded1) != string(encoded2) {
		t.Errorf("round trip changed record:\n%s\nvs\n%s", encoded1, encoded2)
	}
}

func TestRecordTimetableConversion(t *testing.T) {
	rec := NewRecord(7)
	rec.Subjects = []RecordSubject{{Name: "Mathe"}}
	rec.WeekA.Schedule[2][3] = "Mathe"
	rec.SubjectSettings["Mathe"] = RecordSettings{OnlyFirstSemester: true}

	tt := rec.Timetable(7)

	s, ok := tt.SubjectByName("Mathe")
	if !ok {
		t.Fatal("subject missing after conversion")
	}
	if tt.WeekA.Cells[2][3] != s.ID.String() {
		t.Errorf("cell = %q, want id of Mathe", tt.WeekA.Cells[2][3])
	}
	if !tt.Settings[s.ID].OnlyFirstSemester {
		t.Error("settings not carried to the id key")
	}
}
