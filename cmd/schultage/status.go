package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Overview of remaining school days, weeks and hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}

			today := p.Today()
			end := p.EndDate()
			days := p.SchoolDays()
			weeks := p.RemainingWeeks()

			fmt.Printf("Today:          %s (%s)\n", today.Format(), weekdayName(today))
			fmt.Printf("Last day:       %s\n", end.Format())
			if p.Settings().IncludeToday {
				fmt.Println("Counting:       including today")
			} else {
				fmt.Println("Counting:       from tomorrow")
			}
			fmt.Println()
			fmt.Printf("School days:    %d\n", days.SchoolDays)
			fmt.Printf("School weeks:   %d\n", weeks)
			fmt.Printf("Calendar days:  %d (%d weekdays, %d on holidays)\n",
				days.Total, days.Weekdays, days.HolidayWeekdays)

			if ref := p.ReferenceDate(); ref.Valid() {
				fmt.Printf("Current week:   %s (anchor %s)\n", p.ActiveWeekOn(today), ref.Format())
				hours := p.RemainingHours()
				fmt.Printf("Class time:     %s across %d subjects\n",
					formatDuration(hours.TotalSeconds), len(hours.SubjectSeconds))
			} else {
				fmt.Println("Current week:   unknown (set a reference date to enable hours)")
			}

			return nil
		},
	}
}
