package planner

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/username/schultage/internal/config"
	"github.com/username/schultage/internal/store"
	"github.com/username/schultage/internal/timetable"
	"github.com/username/schultage/pkg/dateutil"
)

func testConfig() *config.Config {
	return &config.Config{
		School: config.SchoolConfig{
			Timezone:      "Europe/Berlin",
			EndDate:       "2026-03-20",
			HolidayCutoff: "2026-03-20",
		},
		Holidays: []config.HolidayConfig{
			{From: "2025-07-03", To: "2025-08-13", Name: "Sommerferien"},
		},
		Slots: []config.SlotConfig{
			{Name: "1. Block", Start: "9:00", End: "9:55", Hours: 0.92},
			{Name: "2. Block", Start: "10:00", End: "10:55", Hours: 0.92},
		},
	}
}

func newTestPlanner(t *testing.T, st *store.Store) *Planner {
	t.Helper()
	p, err := New(testConfig(), st, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Mon Jun 30 2025, 08:00 in Berlin (06:00 UTC).
	p.SetClock(func() time.Time {
		return time.Date(2025, 6, 30, 6, 0, 0, 0, time.UTC)
	})
	return p
}

func TestTodayUsesConfiguredZone(t *testing.T) {
	p := newTestPlanner(t, store.New(t.TempDir(), zap.NewNop()))

	// 23:30 UTC is already the next day in Berlin.
	p.SetClock(func() time.Time {
		return time.Date(2025, 6, 30, 23, 30, 0, 0, time.UTC)
	})
	if got := p.Today().Format(); got != "2025-07-01" {
		t.Errorf("Today = %s, want 2025-07-01", got)
	}
}

func TestSchoolDays(t *testing.T) {
	p := newTestPlanner(t, store.New(t.TempDir(), zap.NewNop()))
	if err := p.SetEndDate("2025-07-10"); err != nil {
		t.Fatal(err)
	}

	// Excluding today: Jul 1, Jul 2 (Sommerferien starts Jul 3).
	if got := p.SchoolDays().SchoolDays; got != 2 {
		t.Errorf("SchoolDays = %d, want 2", got)
	}

	if err := p.SetIncludeToday(true); err != nil {
		t.Fatal(err)
	}
	if got := p.SchoolDays().SchoolDays; got != 3 {
		t.Errorf("SchoolDays with today = %d, want 3", got)
	}
}

func TestSchoolDaysOn(t *testing.T) {
	p := newTestPlanner(t, store.New(t.TempDir(), zap.NewNop()))
	if err := p.SetEndDate("2025-07-10"); err != nil {
		t.Fatal(err)
	}

	if got := p.SchoolDaysOn(dateutil.ParseDay("2025-06-27")); got != nil {
		t.Errorf("past day = %v, want nil", *got)
	}
	if got := p.SchoolDaysOn(dateutil.ParseDay("2025-07-11")); got != nil {
		t.Errorf("day after end = %v, want nil", *got)
	}

	// Today's cell counts from tomorrow: Jul 1, Jul 2.
	if got := p.SchoolDaysOn(dateutil.ParseDay("2025-06-30")); got == nil || *got != 2 {
		t.Errorf("today cell = %v, want 2", got)
	}

	// With includeToday today's own cell counts itself too.
	if err := p.SetIncludeToday(true); err != nil {
		t.Fatal(err)
	}
	if got := p.SchoolDaysOn(dateutil.ParseDay("2025-06-30")); got == nil || *got != 3 {
		t.Errorf("today cell with includeToday = %v, want 3", got)
	}

	// The last countable day shows zero.
	if got := p.SchoolDaysOn(dateutil.ParseDay("2025-07-10")); got == nil || *got != 0 {
		t.Errorf("end day cell = %v, want 0", got)
	}
}

func TestSettingsPersistAcrossSessions(t *testing.T) {
	st := store.New(t.TempDir(), zap.NewNop())
	p := newTestPlanner(t, st)

	if err := p.SetEndDate("2025-12-19"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetIncludeToday(true); err != nil {
		t.Fatal(err)
	}
	if err := p.SetReferenceDate("2025-06-30"); err != nil {
		t.Fatal(err)
	}

	p2 := newTestPlanner(t, st)
	if got := p2.EndDate().Format(); got != "2025-12-19" {
		t.Errorf("EndDate = %s, want 2025-12-19", got)
	}
	if !p2.Settings().IncludeToday {
		t.Error("IncludeToday not persisted")
	}
	if got := p2.ReferenceDate().Format(); got != "2025-06-30" {
		t.Errorf("ReferenceDate = %s, want 2025-06-30", got)
	}
}

func TestSetEndDateValidation(t *testing.T) {
	p := newTestPlanner(t, store.New(t.TempDir(), zap.NewNop()))

	if err := p.SetEndDate("20.03.2026"); err == nil {
		t.Error("malformed end date accepted")
	}
	// Empty reverts to the configured default.
	if err := p.SetEndDate(""); err != nil {
		t.Fatal(err)
	}
	if got := p.EndDate().Format(); got != "2026-03-20" {
		t.Errorf("EndDate after revert = %s, want config default", got)
	}
}

func TestHolidayEditsPersist(t *testing.T) {
	st := store.New(t.TempDir(), zap.NewNop())
	p := newTestPlanner(t, st)

	if err := p.AddHoliday("2025-09-15", "2025-09-19", "Projektwoche"); err != nil {
		t.Fatal(err)
	}

	p2 := newTestPlanner(t, st)
	found := false
	for _, iv := range p2.Holidays() {
		if iv.Name == "Projektwoche" {
			found = true
		}
	}
	if !found {
		t.Error("user holiday not persisted")
	}
}

func TestResetHolidays(t *testing.T) {
	st := store.New(t.TempDir(), zap.NewNop())
	p := newTestPlanner(t, st)

	if err := p.AddHoliday("2025-09-15", "2025-09-19", "Projektwoche"); err != nil {
		t.Fatal(err)
	}
	if err := p.ResetHolidays(); err != nil {
		t.Fatal(err)
	}

	p2 := newTestPlanner(t, st)
	if got := len(p2.Holidays()); got != 1 {
		t.Errorf("holidays after reset = %d, want 1 (the default)", got)
	}
}

func TestRemainingHours(t *testing.T) {
	p := newTestPlanner(t, store.New(t.TempDir(), zap.NewNop()))
	if err := p.SetEndDate("2025-07-04"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetReferenceDate("2025-06-30"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetIncludeToday(true); err != nil {
		t.Fatal(err)
	}

	if _, err := p.AddSubject("Mathe"); err != nil {
		t.Fatal(err)
	}
	// Monday, first slot, both weeks.
	if err := p.SetCell(timetable.WeekA, 0, 0, "Mathe"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetCell(timetable.WeekB, 0, 0, "Mathe"); err != nil {
		t.Fatal(err)
	}

	// Only Monday Jun 30 is in range and the clock (08:00) is before
	// the slot, so the full nominal duration remains.
	res := p.RemainingHours()
	if want := 0.92 * 3600; res.TotalSeconds != want {
		t.Errorf("TotalSeconds = %v, want %v", res.TotalSeconds, want)
	}
	if res.SubjectSeconds["Mathe"] != res.TotalSeconds {
		t.Errorf("SubjectSeconds = %v, want all on Mathe", res.SubjectSeconds)
	}
}

func TestRemainingHoursWithoutReference(t *testing.T) {
	p := newTestPlanner(t, store.New(t.TempDir(), zap.NewNop()))
	if _, err := p.AddSubject("Mathe"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetCell(timetable.WeekA, 0, 0, "Mathe"); err != nil {
		t.Fatal(err)
	}

	if res := p.RemainingHours(); res.TotalSeconds != 0 {
		t.Errorf("TotalSeconds without reference = %v, want 0", res.TotalSeconds)
	}
}

func TestSetCellUnknownSubject(t *testing.T) {
	p := newTestPlanner(t, store.New(t.TempDir(), zap.NewNop()))
	if err := p.SetCell(timetable.WeekA, 0, 0, "Erdkunde"); err == nil {
		t.Error("unknown subject accepted")
	}
}

func TestTimetableExportImportRoundTrip(t *testing.T) {
	st := store.New(t.TempDir(), zap.NewNop())
	p := newTestPlanner(t, st)

	if _, err := p.AddSubject("Mathe"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetCell(timetable.WeekA, 0, 0, "Mathe"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetSubjectFirstSemester("Mathe", true); err != nil {
		t.Fatal(err)
	}

	data, err := p.ExportTimetable()
	if err != nil {
		t.Fatalf("ExportTimetable: %v", err)
	}

	p2 := newTestPlanner(t, store.New(t.TempDir(), zap.NewNop()))
	if err := p2.ImportTimetable(data); err != nil {
		t.Fatalf("ImportTimetable: %v", err)
	}

	s, ok := p2.Timetable().SubjectByName("Mathe")
	if !ok {
		t.Fatal("imported subject missing")
	}
	if p2.Timetable().WeekA.Cells[0][0] != s.ID.String() {
		t.Error("imported cell lost")
	}
	if !p2.Timetable().Settings[s.ID].OnlyFirstSemester {
		t.Error("imported setting lost")
	}
}

func TestHolidayExportImportRoundTrip(t *testing.T) {
	p := newTestPlanner(t, store.New(t.TempDir(), zap.NewNop()))
	if err := p.AddExcursion("2025-09-10", "Zoo"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetExcursionsAsHolidays(true); err != nil {
		t.Fatal(err)
	}

	data, err := p.ExportHolidays()
	if err != nil {
		t.Fatal(err)
	}

	p2 := newTestPlanner(t, store.New(t.TempDir(), zap.NewNop()))
	if err := p2.ImportHolidays(data); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, iv := range p2.Holidays() {
		if iv.Name == "Zoo" {
			found = true
		}
	}
	if !found {
		t.Error("imported excursion not effective")
	}
}

func TestCorruptStateDegradesToEmpty(t *testing.T) {
	st := store.New(t.TempDir(), zap.NewNop())
	if err := st.PutRaw("userdata", []byte("{broken")); err != nil {
		t.Fatal(err)
	}
	if err := st.PutRaw("timetable", []byte("[1,2,3]")); err != nil {
		t.Fatal(err)
	}
	if err := st.PutRaw("settings", []byte("not json")); err != nil {
		t.Fatal(err)
	}

	p := newTestPlanner(t, st)
	if got := len(p.Timetable().Subjects); got != 0 {
		t.Errorf("subjects from corrupt state = %d, want 0", got)
	}
	if p.Settings() != (Settings{}) {
		t.Errorf("settings from corrupt state = %+v, want defaults", p.Settings())
	}
	if got := len(p.Holidays()); got != 1 {
		t.Errorf("holidays from corrupt state = %d, want 1 default", got)
	}
}
