package holiday

import (
	"encoding/json"
	"fmt"

	"github.com/username/schultage/pkg/dateutil"
)

// CurrentVersion is the schema version written by this build.
const CurrentVersion = 1

// Entry is the persisted/interchange form of a user holiday interval.
type Entry struct {
	From string `json:"from"`
	To   string `json:"to"`
	Name string `json:"name"`
}

// Excursion is a single out-of-school day (class trip etc.). It only
// affects counting when Record.ExcursionsAsHolidays is set.
type Excursion struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// Record holds the user's saved holiday edits. Deleting a default
// interval is represented as a tombstone key in RemovedDefaults,
// because defaults live in configuration, not in the record.
type Record struct {
	Version              int         `json:"version"`
	User                 []Entry     `json:"user"`
	RemovedDefaults      []string    `json:"removedDefaults"`
	Excursions           []Excursion `json:"excursions"`
	ExcursionsAsHolidays bool        `json:"excursionsAsHolidays"`
}

// NewRecord returns an empty override record.
func NewRecord() *Record {
	return &Record{
		Version:         CurrentVersion,
		User:            []Entry{},
		RemovedDefaults: []string{},
		Excursions:      []Excursion{},
	}
}

// DecodeRecord parses a stored record defensively: a corrupt document
// or a corrupt individual field is replaced with its empty default.
// It never fails.
func DecodeRecord(data []byte) *Record {
	rec := NewRecord()
	if len(data) == 0 {
		return rec
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return rec
	}

	if raw, ok := fields["version"]; ok {
		var v int
		if err := json.Unmarshal(raw, &v); err == nil && v > 0 {
			rec.Version = v
		}
	}
	if raw, ok := fields["user"]; ok {
		var user []Entry
		if err := json.Unmarshal(raw, &user); err == nil && user != nil {
			rec.User = user
		}
	}
	if raw, ok := fields["removedDefaults"]; ok {
		var removed []string
		if err := json.Unmarshal(raw, &removed); err == nil && removed != nil {
			rec.RemovedDefaults = removed
		}
	}
	if raw, ok := fields["excursions"]; ok {
		var ex []Excursion
		if err := json.Unmarshal(raw, &ex); err == nil && ex != nil {
			rec.Excursions = ex
		}
	}
	if raw, ok := fields["excursionsAsHolidays"]; ok {
		var flag bool
		if err := json.Unmarshal(raw, &flag); err == nil {
			rec.ExcursionsAsHolidays = flag
		}
	}

	return rec
}

// Encode serializes the record as indented JSON, stamping the current
// schema version.
func (r *Record) Encode() ([]byte, error) {
	r.Version = CurrentVersion
	return json.MarshalIndent(r, "", "  ")
}

// Sanitize drops user entries missing either bound and normalizes nil
// slices, for records produced by older builds or external imports.
func (r *Record) Sanitize() {
	user := make([]Entry, 0, len(r.User))
	for _, u := range r.User {
		if u.From == "" || u.To == "" {
			continue
		}
		user = append(user, u)
	}
	r.User = user
	if r.RemovedDefaults == nil {
		r.RemovedDefaults = []string{}
	}
	if r.Excursions == nil {
		r.Excursions = []Excursion{}
	}
	r.Version = CurrentVersion
}

// AddUser appends a user holiday interval. Both bounds are required
// and the range must not be inverted; the record is left unchanged on
// rejection.
func (r *Record) AddUser(from, to, name string) error {
	if from == "" || to == "" {
		return fmt.Errorf("both start and end date are required")
	}
	f := dateutil.ParseDay(from)
	t := dateutil.ParseDay(to)
	if !f.Valid() || !t.Valid() {
		return fmt.Errorf("invalid date range %q..%q", from, to)
	}
	if f > t {
		return fmt.Errorf("start date %s is after end date %s", from, to)
	}
	r.User = append(r.User, Entry{From: from, To: to, Name: name})
	return nil
}

// Remove deletes the interval from the record. User entries are
// removed directly; default entries get a tombstone key so the merge
// skips them from then on.
func (r *Record) Remove(iv Interval) {
	if iv.Source == SourceUser {
		kept := make([]Entry, 0, len(r.User))
		for _, u := range r.User {
			if u.From == iv.From.Format() && u.To == iv.To.Format() {
				continue
			}
			kept = append(kept, u)
		}
		r.User = kept
		return
	}

	key := iv.Key()
	for _, k := range r.RemovedDefaults {
		if k == key {
			return
		}
	}
	r.RemovedDefaults = append(r.RemovedDefaults, key)
}

// AddExcursion registers a single excursion day. Duplicate dates are
// rejected.
func (r *Record) AddExcursion(date, name string) error {
	if date == "" {
		return fmt.Errorf("excursion date is required")
	}
	if !dateutil.ParseDay(date).Valid() {
		return fmt.Errorf("invalid excursion date %q", date)
	}
	for _, e := range r.Excursions {
		if e.Date == date {
			return fmt.Errorf("excursion on %s already exists", date)
		}
	}
	r.Excursions = append(r.Excursions, Excursion{Date: date, Name: name})
	return nil
}

// RemoveExcursion deletes the excursion on the given date, if any.
func (r *Record) RemoveExcursion(date string) {
	kept := make([]Excursion, 0, len(r.Excursions))
	for _, e := range r.Excursions {
		if e.Date == date {
			continue
		}
		kept = append(kept, e)
	}
	r.Excursions = kept
}
