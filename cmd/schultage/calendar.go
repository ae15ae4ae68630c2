package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/username/schultage/internal/holiday"
	"github.com/username/schultage/internal/planner"
	"github.com/username/schultage/pkg/dateutil"
)

var monthNames = []string{
	"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

func calendarCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Month view with remaining school days per date",
		Long:  "Renders one month. Each countable date shows how many school days remain after it; holidays are marked F, excursions E",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}

			year, mon, err := resolveMonth(month, p.Today())
			if err != nil {
				return err
			}

			printMonth(p, year, mon)
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to show as YYYY-MM (default: current)")
	return cmd
}

func resolveMonth(flag string, today dateutil.Day) (int, time.Month, error) {
	if flag == "" {
		t := today.Time()
		return t.Year(), t.Month(), nil
	}
	var y, m int
	if _, err := fmt.Sscanf(flag, "%d-%d", &y, &m); err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("month must be YYYY-MM, got %q", flag)
	}
	return y, time.Month(m), nil
}

func printMonth(p *planner.Planner, year int, mon time.Month) {
	first := dateutil.DayOf(time.Date(year, mon, 1, 0, 0, 0, 0, time.UTC))
	daysInMonth := dateutil.DayOf(time.Date(year, mon+1, 1, 0, 0, 0, 0, time.UTC)) - first

	fmt.Printf("%s %d\n", monthNames[mon-1], year)
	fmt.Println(" Mo  Di  Mi  Do  Fr  Sa  So")

	holidays := p.Holidays()
	offset := (int(first.Weekday()) + 6) % 7 // Monday-first column

	cells := make([]string, 0, offset+int(daysInMonth))
	marks := make([]string, 0, offset+int(daysInMonth))
	for i := 0; i < offset; i++ {
		cells = append(cells, "   ")
		marks = append(marks, "   ")
	}

	for d := first; d < first+daysInMonth; d++ {
		cells = append(cells, fmt.Sprintf("%3d", int(d-first)+1))

		switch {
		case holidays.Contains(d):
			marks = append(marks, "  "+holidayMark(holidays, d))
		case d.IsWeekend():
			marks = append(marks, "  -")
		default:
			if n := p.SchoolDaysOn(d); n != nil {
				marks = append(marks, fmt.Sprintf("%3d", *n))
			} else {
				marks = append(marks, "  ·")
			}
		}
	}

	for i := 0; i < len(cells); i += 7 {
		end := i + 7
		if end > len(cells) {
			end = len(cells)
		}
		printRow(cells[i:end])
		printRow(marks[i:end])
	}
}

func holidayMark(set holiday.Set, d dateutil.Day) string {
	for _, iv := range set {
		if iv.Contains(d) && iv.Source == holiday.SourceExcursion {
			return "E"
		}
	}
	return "F"
}

func printRow(cols []string) {
	for i, c := range cols {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(c)
	}
	fmt.Println()
}
