// Package planner ties configuration, persisted state and the
// counting engines together into one session.
package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/username/schultage/internal/config"
	"github.com/username/schultage/internal/holiday"
	"github.com/username/schultage/internal/schoolcal"
	"github.com/username/schultage/internal/store"
	"github.com/username/schultage/internal/timetable"
	"github.com/username/schultage/pkg/dateutil"
)

// State file keys.
const (
	keyUserdata  = "userdata"
	keyTimetable = "timetable"
	keySettings  = "settings"
)

// Settings are the per-user knobs persisted between runs. Empty date
// strings mean "use the configured default" for the end date and
// "unset" for the reference date.
type Settings struct {
	EndDate       string `json:"endDate,omitempty"`
	ReferenceDate string `json:"referenceDate,omitempty"`
	IncludeToday  bool   `json:"includeToday"`
	DisplayBlocks bool   `json:"displayBlocks"`
}

// Planner is one loaded session over the persisted state. It is not
// safe for concurrent use.
type Planner struct {
	cfg    *config.Config
	store  *store.Store
	logger *zap.Logger
	loc    *time.Location
	now    func() time.Time

	slots    []timetable.Slot
	holidays *holiday.Record
	tt       *timetable.Timetable
	settings Settings
}

// New loads all persisted state and returns a ready session. Corrupt
// state files degrade to their empty shape instead of failing, only
// I/O errors surface.
func New(cfg *config.Config, st *store.Store, logger *zap.Logger) (*Planner, error) {
	p := &Planner{
		cfg:    cfg,
		store:  st,
		logger: logger,
		loc:    cfg.Location(),
		now:    time.Now,
		slots:  cfg.SlotTable(),
	}

	raw, err := st.GetRaw(keyUserdata)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	p.holidays = holiday.DecodeRecord(raw)

	raw, err = st.GetRaw(keyTimetable)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	rec := timetable.DecodeRecord(raw, len(p.slots))
	p.tt = rec.Timetable(len(p.slots))

	if err := st.Get(keySettings, &p.settings); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn("Settings unreadable, starting from defaults", zap.Error(err))
		}
		p.settings = Settings{}
	}

	logger.Debug("Session loaded",
		zap.Int("subjects", len(p.tt.Subjects)),
		zap.Int("holidays", len(p.Holidays())))

	return p, nil
}

// SetClock overrides the time source, test use only.
func (p *Planner) SetClock(now func() time.Time) {
	p.now = now
}

// Today returns the current day in the configured timezone.
func (p *Planner) Today() dateutil.Day {
	return dateutil.Today(p.now(), p.loc)
}

// Settings returns the current persisted knobs.
func (p *Planner) Settings() Settings {
	return p.settings
}

// EndDate returns the active end of the counting range, the persisted
// override if set, otherwise the configured default.
func (p *Planner) EndDate() dateutil.Day {
	if d := dateutil.ParseDay(p.settings.EndDate); d.Valid() {
		return d
	}
	return p.cfg.EndDay()
}

// ReferenceDate returns the rotation anchor or InvalidDay when unset.
func (p *Planner) ReferenceDate() dateutil.Day {
	return dateutil.ParseDay(p.settings.ReferenceDate)
}

// Slots returns the configured daily class periods.
func (p *Planner) Slots() []timetable.Slot {
	return p.slots
}

// Holidays returns the effective holiday list: built-in defaults up to
// the cutoff, user edits applied, excursions mixed in when enabled.
func (p *Planner) Holidays() holiday.Set {
	return holiday.BuildEffective(p.cfg.DefaultHolidays(), p.cfg.Cutoff(), p.holidays)
}

// HolidayRecord exposes the raw user overlay for listing.
func (p *Planner) HolidayRecord() *holiday.Record {
	return p.holidays
}

// Timetable exposes the loaded timetable for listing.
func (p *Planner) Timetable() *timetable.Timetable {
	return p.tt
}

// SchoolDays counts school days from today through the end date. The
// includeToday setting decides whether today itself is in range.
func (p *Planner) SchoolDays() schoolcal.Result {
	return schoolcal.Count(p.Today(), p.EndDate(), p.settings.IncludeToday, p.Holidays())
}

// SchoolDaysOn returns the remaining school days shown in a calendar
// cell for the given day, or nil for days outside the countable range.
// Cells count from the following day so the last school day shows
// zero; only today honors the includeToday setting.
func (p *Planner) SchoolDaysOn(day dateutil.Day) *int {
	today := p.Today()
	end := p.EndDate()
	if !day.Valid() || !end.Valid() || day < today || day > end {
		return nil
	}

	start := day + 1
	if p.settings.IncludeToday && day == today {
		start = day
	}
	n := 0
	if start <= end {
		n = schoolcal.Count(start, end, true, p.Holidays()).SchoolDays
	}
	return &n
}

// RemainingWeeks counts calendar weeks from today through the end date
// that still contain at least one school day.
func (p *Planner) RemainingWeeks() int {
	return schoolcal.RemainingWeeks(p.Today(), p.EndDate(), p.Holidays())
}

// ActiveWeekOn resolves the rotation week for the given day.
func (p *Planner) ActiveWeekOn(day dateutil.Day) timetable.Week {
	return timetable.ActiveWeek(p.ReferenceDate(), day)
}

// RemainingHours aggregates remaining class time per subject from now
// through the end date. Without a reference date the result is empty.
func (p *Planner) RemainingHours() timetable.Result {
	now := p.now()
	today := dateutil.Today(now, p.loc)

	start := today + 1
	clock := 0
	if p.settings.IncludeToday {
		start = today
		clock = dateutil.ClockSeconds(now, p.loc)
	}

	return timetable.Aggregate(p.tt, p.slots, p.ReferenceDate(), start, p.EndDate(), p.Holidays(), timetable.Options{
		IncludeToday:     p.settings.IncludeToday,
		Today:            today,
		ClockSeconds:     clock,
		RealDurations:    p.settings.DisplayBlocks,
		FirstSemesterEnd: timetable.FirstSemesterEnd(p.EndDate()),
	})
}

// --- settings mutations ---

func (p *Planner) saveSettings() error {
	return p.store.Put(keySettings, p.settings)
}

// SetEndDate overrides the end of the counting range. An empty value
// reverts to the configured default.
func (p *Planner) SetEndDate(ymd string) error {
	if ymd != "" && !dateutil.ParseDay(ymd).Valid() {
		return fmt.Errorf("end date %q must be YYYY-MM-DD", ymd)
	}
	p.settings.EndDate = ymd
	return p.saveSettings()
}

// SetReferenceDate anchors the A/B rotation. An empty value unsets it.
func (p *Planner) SetReferenceDate(ymd string) error {
	if ymd != "" && !dateutil.ParseDay(ymd).Valid() {
		return fmt.Errorf("reference date %q must be YYYY-MM-DD", ymd)
	}
	p.settings.ReferenceDate = ymd
	return p.saveSettings()
}

// SetIncludeToday toggles counting the current day.
func (p *Planner) SetIncludeToday(v bool) error {
	p.settings.IncludeToday = v
	return p.saveSettings()
}

// SetDisplayBlocks toggles real clock durations instead of nominal
// hours.
func (p *Planner) SetDisplayBlocks(v bool) error {
	p.settings.DisplayBlocks = v
	return p.saveSettings()
}

// --- holiday mutations ---

func (p *Planner) saveHolidays() error {
	data, err := p.holidays.Encode()
	if err != nil {
		return err
	}
	return p.store.PutRaw(keyUserdata, data)
}

// AddHoliday records a user holiday interval.
func (p *Planner) AddHoliday(from, to, name string) error {
	if err := p.holidays.AddUser(from, to, name); err != nil {
		return err
	}
	p.logger.Info("Holiday added", zap.String("from", from), zap.String("to", to))
	return p.saveHolidays()
}

// RemoveHoliday removes the effective interval, either dropping a user
// entry or masking a built-in default.
func (p *Planner) RemoveHoliday(iv holiday.Interval) error {
	p.holidays.Remove(iv)
	return p.saveHolidays()
}

// ResetHolidays discards every user edit, restoring the built-ins.
func (p *Planner) ResetHolidays() error {
	p.holidays = holiday.NewRecord()
	return p.store.Delete(keyUserdata)
}

// AddExcursion records a single-day excursion.
func (p *Planner) AddExcursion(date, name string) error {
	if err := p.holidays.AddExcursion(date, name); err != nil {
		return err
	}
	return p.saveHolidays()
}

// RemoveExcursion drops the excursion on the given date.
func (p *Planner) RemoveExcursion(date string) error {
	p.holidays.RemoveExcursion(date)
	return p.saveHolidays()
}

// SetExcursionsAsHolidays toggles whether excursions count as
// school-free days.
func (p *Planner) SetExcursionsAsHolidays(v bool) error {
	p.holidays.ExcursionsAsHolidays = v
	return p.saveHolidays()
}

// --- timetable mutations ---

func (p *Planner) saveTimetable() error {
	data, err := p.tt.Record(len(p.slots)).Encode()
	if err != nil {
		return err
	}
	return p.store.PutRaw(keyTimetable, data)
}

// AddSubject registers a new subject.
func (p *Planner) AddSubject(name string) (timetable.Subject, error) {
	s, err := p.tt.AddSubject(name)
	if err != nil {
		return timetable.Subject{}, err
	}
	return s, p.saveTimetable()
}

// RenameSubject changes a subject's display name.
func (p *Planner) RenameSubject(oldName, newName string) error {
	s, ok := p.tt.SubjectByName(oldName)
	if !ok {
		return fmt.Errorf("unknown subject %q", oldName)
	}
	if err := p.tt.RenameSubject(s.ID, newName); err != nil {
		return err
	}
	return p.saveTimetable()
}

// RemoveSubject deletes a subject and clears its schedule cells.
func (p *Planner) RemoveSubject(name string) error {
	s, ok := p.tt.SubjectByName(name)
	if !ok {
		return fmt.Errorf("unknown subject %q", name)
	}
	p.tt.RemoveSubject(s.ID)
	return p.saveTimetable()
}

// SetSubjectFirstSemester flags a subject as first-semester-only.
func (p *Planner) SetSubjectFirstSemester(name string, v bool) error {
	s, ok := p.tt.SubjectByName(name)
	if !ok {
		return fmt.Errorf("unknown subject %q", name)
	}
	p.tt.SetSetting(s.ID, timetable.Settings{OnlyFirstSemester: v})
	return p.saveTimetable()
}

// SetCell assigns a subject to a schedule cell. An empty subject name
// clears the cell.
func (p *Planner) SetCell(week timetable.Week, weekday, slot int, subjectName string) error {
	var id *uuid.UUID
	if subjectName != "" {
		s, ok := p.tt.SubjectByName(subjectName)
		if !ok {
			return fmt.Errorf("unknown subject %q", subjectName)
		}
		id = &s.ID
	}
	if err := p.tt.SetCell(week, weekday, slot, id); err != nil {
		return err
	}
	return p.saveTimetable()
}

// CopyWeek replaces one rotation week's grid with the other's.
func (p *Planner) CopyWeek(from, to timetable.Week) error {
	p.tt.CopyWeek(from, to)
	return p.saveTimetable()
}

// ClearWeek empties one rotation week's grid.
func (p *Planner) ClearWeek(w timetable.Week) error {
	p.tt.ClearWeek(w)
	return p.saveTimetable()
}

// --- export / import ---

// ExportHolidays returns the user holiday overlay as JSON.
func (p *Planner) ExportHolidays() ([]byte, error) {
	return p.holidays.Encode()
}

// ImportHolidays replaces the user holiday overlay. The payload goes
// through the same defensive decoding as stored state.
func (p *Planner) ImportHolidays(data []byte) error {
	p.holidays = holiday.DecodeRecord(data)
	return p.saveHolidays()
}

// ExportTimetable returns the timetable in the interchange format.
func (p *Planner) ExportTimetable() ([]byte, error) {
	return p.tt.Record(len(p.slots)).Encode()
}

// ImportTimetable replaces the timetable from interchange JSON,
// accepting the legacy layouts older exports used.
func (p *Planner) ImportTimetable(data []byte) error {
	rec := timetable.DecodeRecord(data, len(p.slots))
	p.tt = rec.Timetable(len(p.slots))
	return p.saveTimetable()
}
