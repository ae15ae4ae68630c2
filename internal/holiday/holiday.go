package holiday

import (
	"sort"

	"github.com/username/schultage/pkg/dateutil"
)

// Source marks where a holiday interval came from.
type Source string

const (
	SourceDefault   Source = "default"
	SourceUser      Source = "user"
	SourceExcursion Source = "excursion"
)

// Interval is a closed range of non-school days. Identity is the
// (From, To) pair, not the name: two intervals with the same bounds
// are the same entity and the later-loaded one wins.
type Interval struct {
	From   dateutil.Day
	To     dateutil.Day
	Name   string
	Source Source
}

// Key returns the identity key of the interval.
func (iv Interval) Key() string {
	return iv.From.Format() + "|" + iv.To.Format()
}

// Contains reports whether the day falls inside the interval.
func (iv Interval) Contains(d dateutil.Day) bool {
	return d >= iv.From && d <= iv.To
}

// Set is an effective holiday list, sorted ascending by start day.
type Set []Interval

// Contains reports whether the day falls inside any interval.
func (s Set) Contains(d dateutil.Day) bool {
	for _, iv := range s {
		if iv.Contains(d) {
			return true
		}
	}
	return false
}

// BuildEffective merges the static default table with the user's
// override record into the canonical holiday list:
//
//  1. defaults starting after the cutoff date are dropped
//  2. tombstoned defaults are removed
//  3. user entries overlay by key (user wins on collision)
//  4. excursions become single-day entries when the flag is set
//
// The result is deduplicated by key and sorted ascending by start.
func BuildEffective(defaults []Interval, cutoff dateutil.Day, rec *Record) Set {
	if rec == nil {
		rec = NewRecord()
	}

	m := make(map[string]Interval)
	order := make([]string, 0, len(defaults))

	put := func(iv Interval) {
		if _, seen := m[iv.Key()]; !seen {
			order = append(order, iv.Key())
		}
		m[iv.Key()] = iv
	}

	for _, d := range defaults {
		if !d.From.Valid() || d.From > cutoff {
			continue
		}
		d.Source = SourceDefault
		put(d)
	}

	for _, key := range rec.RemovedDefaults {
		delete(m, key)
	}

	for _, u := range rec.User {
		if u.From == "" || u.To == "" {
			continue
		}
		put(Interval{
			From:   dateutil.ParseDay(u.From),
			To:     dateutil.ParseDay(u.To),
			Name:   u.Name,
			Source: SourceUser,
		})
	}

	if rec.ExcursionsAsHolidays {
		for _, e := range rec.Excursions {
			if e.Date == "" {
				continue
			}
			day := dateutil.ParseDay(e.Date)
			name := e.Name
			if name == "" {
				name = "Exkursion"
			}
			put(Interval{From: day, To: day, Name: name, Source: SourceExcursion})
		}
	}

	out := make(Set, 0, len(m))
	for _, key := range order {
		if iv, ok := m[key]; ok {
			out = append(out, iv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].From < out[j].From
	})
	return out
}
