package dateutil

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		valid bool
	}{
		{"ISO date", "2025-06-30", "2025-06-30", true},
		{"epoch", "1970-01-01", "1970-01-01", true},
		{"before epoch", "1969-12-31", "1969-12-31", true},
		{"empty", "", "", false},
		{"garbage", "not-a-date", "", false},
		{"wrong format", "30.06.2025", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ParseDay(tt.input)

			if d.Valid() != tt.valid {
				t.Fatalf("ParseDay(%q).Valid() = %v, want %v", tt.input, d.Valid(), tt.valid)
			}
			if d.Format() != tt.want {
				t.Errorf("ParseDay(%q).Format() = %q, want %q", tt.input, d.Format(), tt.want)
			}
		})
	}
}

func TestDayArithmetic(t *testing.T) {
	a := ParseDay("2025-06-30")
	b := ParseDay("2025-07-10")

	if diff := int(b - a); diff != 10 {
		t.Errorf("day difference = %d, want 10", diff)
	}
}

func TestDayRoundTrip(t *testing.T) {
	for _, ymd := range []string{"2025-01-01", "2025-12-19", "2026-03-20", "2000-02-29"} {
		d := ParseDay(ymd)
		if got := d.Format(); got != ymd {
			t.Errorf("round trip %q = %q", ymd, got)
		}
	}
}

func TestWeekday(t *testing.T) {
	tests := []struct {
		input string
		want  time.Weekday
	}{
		{"1970-01-01", time.Thursday},
		{"2025-06-30", time.Monday},
		{"2025-07-05", time.Saturday},
		{"2025-07-06", time.Sunday},
		{"2025-07-10", time.Thursday},
	}

	for _, tt := range tests {
		d := ParseDay(tt.input)
		if got := d.Weekday(); got != tt.want {
			t.Errorf("Weekday(%s) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	if !ParseDay("2025-07-05").IsWeekend() {
		t.Error("Saturday should be weekend")
	}
	if !ParseDay("2025-07-06").IsWeekend() {
		t.Error("Sunday should be weekend")
	}
	if ParseDay("2025-07-04").IsWeekend() {
		t.Error("Friday should not be weekend")
	}
}

func TestMonday(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Wednesday returns Monday", "2025-07-02", "2025-06-30"},
		{"Monday returns same Monday", "2025-06-30", "2025-06-30"},
		{"Sunday returns previous Monday", "2025-07-06", "2025-06-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDay(tt.input).Monday()
			if got.Format() != tt.want {
				t.Errorf("Monday(%s) = %s, want %s", tt.input, got.Format(), tt.want)
			}
		})
	}
}

func TestTodayFixedZone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("failed to load zone: %v", err)
	}

	// 23:30 UTC on June 30 is already July 1 in Berlin (CEST, UTC+2).
	instant := time.Date(2025, 6, 30, 23, 30, 0, 0, time.UTC)

	if got := Today(instant, berlin).Format(); got != "2025-07-01" {
		t.Errorf("Today in Berlin = %s, want 2025-07-01", got)
	}
	if got := Today(instant, time.UTC).Format(); got != "2025-06-30" {
		t.Errorf("Today in UTC = %s, want 2025-06-30", got)
	}
}

func TestClockSeconds(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("failed to load zone: %v", err)
	}

	// 07:30:00 UTC in summer = 09:30:00 Berlin.
	instant := time.Date(2025, 7, 1, 7, 30, 0, 0, time.UTC)

	want := 9*3600 + 30*60
	if got := ClockSeconds(instant, berlin); got != want {
		t.Errorf("ClockSeconds = %d, want %d", got, want)
	}
}

func TestIsSameDay(t *testing.T) {
	a := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC)
	c := time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC)

	if !IsSameDay(a, b) {
		t.Error("same date different time should match")
	}
	if IsSameDay(a, c) {
		t.Error("different dates should not match")
	}
}
