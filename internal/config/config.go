// Package config loads the application configuration from file and
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/username/schultage/internal/holiday"
	"github.com/username/schultage/internal/timetable"
	"github.com/username/schultage/pkg/dateutil"
)

// Config represents application configuration
type Config struct {
	School   SchoolConfig    `mapstructure:"school"`
	Holidays []HolidayConfig `mapstructure:"holidays"`
	Slots    []SlotConfig    `mapstructure:"slots"`
	State    StateConfig     `mapstructure:"state"`
	Log      LogConfig       `mapstructure:"log"`
}

// SchoolConfig represents the school year parameters
type SchoolConfig struct {
	Timezone      string `mapstructure:"timezone"`       // IANA name, all "today" decisions use it
	EndDate       string `mapstructure:"end_date"`       // default end of the counting range
	HolidayCutoff string `mapstructure:"holiday_cutoff"` // defaults ending after this date are dropped
}

// HolidayConfig represents one built-in holiday interval
type HolidayConfig struct {
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
	Name string `mapstructure:"name"`
}

// SlotConfig represents one daily class period
type SlotConfig struct {
	Name  string  `mapstructure:"name"`
	Start string  `mapstructure:"start"` // "H:MM"
	End   string  `mapstructure:"end"`
	Hours float64 `mapstructure:"hours"` // nominal accounting duration
}

// StateConfig represents state storage configuration
type StateConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file. A missing config file is fine
// unless an explicit path was given, the defaults describe a complete
// school year.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.schultage")
		v.AddConfigPath("/etc/schultage")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.School.Timezone == "" {
		c.School.Timezone = "Europe/Berlin"
	}
	if c.School.EndDate == "" {
		c.School.EndDate = "2026-03-20"
	}
	if c.School.HolidayCutoff == "" {
		c.School.HolidayCutoff = c.School.EndDate
	}
	if len(c.Holidays) == 0 {
		c.Holidays = defaultHolidays()
	}
	if len(c.Slots) == 0 {
		c.Slots = defaultSlots()
	}
	if c.State.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.State.Dir = filepath.Join(home, ".schultage", "state")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func defaultHolidays() []HolidayConfig {
	return []HolidayConfig{
		{From: "2025-07-03", To: "2025-08-13", Name: "Sommerferien"},
		{From: "2025-10-13", To: "2025-10-25", Name: "Herbstferien"},
		{From: "2025-11-24", To: "2025-11-24", Name: "Lehrerfortbildung"},
		{From: "2025-12-22", To: "2026-01-05", Name: "Weihnachtsferien"},
		{From: "2026-02-02", To: "2026-02-03", Name: "Winterferien"},
	}
}

func defaultSlots() []SlotConfig {
	slots := make([]SlotConfig, 0, 7)
	for _, s := range timetable.DefaultSlots() {
		slots = append(slots, SlotConfig{
			Name:  s.Name,
			Start: fmt.Sprintf("%d:%02d", s.Start/60, s.Start%60),
			End:   fmt.Sprintf("%d:%02d", s.End/60, s.End%60),
			Hours: s.NominalHours,
		})
	}
	return slots
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.School.Timezone); err != nil {
		return fmt.Errorf("school.timezone %q is not a valid IANA timezone", c.School.Timezone)
	}
	if !dateutil.ParseDay(c.School.EndDate).Valid() {
		return fmt.Errorf("school.end_date %q must be YYYY-MM-DD", c.School.EndDate)
	}
	if !dateutil.ParseDay(c.School.HolidayCutoff).Valid() {
		return fmt.Errorf("school.holiday_cutoff %q must be YYYY-MM-DD", c.School.HolidayCutoff)
	}

	for i, h := range c.Holidays {
		from := dateutil.ParseDay(h.From)
		to := dateutil.ParseDay(h.To)
		if !from.Valid() || !to.Valid() {
			return fmt.Errorf("holidays[%d]: from and to must be YYYY-MM-DD", i)
		}
		if to < from {
			return fmt.Errorf("holidays[%d]: to %s is before from %s", i, h.To, h.From)
		}
	}

	for i, s := range c.Slots {
		start, err := timetable.ParseClock(s.Start)
		if err != nil {
			return fmt.Errorf("slots[%d]: %w", i, err)
		}
		end, err := timetable.ParseClock(s.End)
		if err != nil {
			return fmt.Errorf("slots[%d]: %w", i, err)
		}
		if end <= start {
			return fmt.Errorf("slots[%d]: end %s is not after start %s", i, s.End, s.Start)
		}
		if s.Hours <= 0 {
			return fmt.Errorf("slots[%d]: hours must be positive", i)
		}
	}

	return nil
}

// Location returns the configured timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.School.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// EndDay returns the configured end of the counting range.
func (c *Config) EndDay() dateutil.Day {
	return dateutil.ParseDay(c.School.EndDate)
}

// Cutoff returns the date past which built-in holidays are ignored.
func (c *Config) Cutoff() dateutil.Day {
	return dateutil.ParseDay(c.School.HolidayCutoff)
}

// DefaultHolidays returns the configured built-in holiday intervals.
func (c *Config) DefaultHolidays() []holiday.Interval {
	out := make([]holiday.Interval, 0, len(c.Holidays))
	for _, h := range c.Holidays {
		out = append(out, holiday.Interval{
			From:   dateutil.ParseDay(h.From),
			To:     dateutil.ParseDay(h.To),
			Name:   h.Name,
			Source: holiday.SourceDefault,
		})
	}
	return out
}

// SlotTable returns the configured daily class periods.
func (c *Config) SlotTable() []timetable.Slot {
	out := make([]timetable.Slot, 0, len(c.Slots))
	for _, s := range c.Slots {
		start, _ := timetable.ParseClock(s.Start)
		end, _ := timetable.ParseClock(s.End)
		out = append(out, timetable.Slot{
			Name:         s.Name,
			Start:        start,
			End:          end,
			NominalHours: s.Hours,
		})
	}
	return out
}
