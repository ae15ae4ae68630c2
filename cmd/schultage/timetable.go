package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/username/schultage/internal/planner"
	"github.com/username/schultage/internal/timetable"
)

func timetableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timetable",
		Short: "Manage the A/B rotating timetable",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show [A|B]",
		Short: "Print one rotation week's grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}

			week := timetable.WeekA
			if len(args) == 1 {
				if week, err = parseWeek(args[0]); err != nil {
					return err
				}
			} else if ref := p.ReferenceDate(); ref.Valid() {
				week = p.ActiveWeekOn(p.Today())
			}

			printWeek(p, week)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <A|B> <weekday> <slot> <subject>",
		Short: "Assign a subject to a cell (weekday Mo..Fr, slot 1-based)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := parseWeek(args[0])
			if err != nil {
				return err
			}
			weekday, err := parseWeekday(args[1])
			if err != nil {
				return err
			}
			var slot int
			if _, err := fmt.Sscanf(args[2], "%d", &slot); err != nil || slot < 1 {
				return fmt.Errorf("slot must be a 1-based index, got %q", args[2])
			}

			p, err := openSession()
			if err != nil {
				return err
			}
			return p.SetCell(week, weekday, slot-1, args[3])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unset <A|B> <weekday> <slot>",
		Short: "Clear a cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := parseWeek(args[0])
			if err != nil {
				return err
			}
			weekday, err := parseWeekday(args[1])
			if err != nil {
				return err
			}
			var slot int
			if _, err := fmt.Sscanf(args[2], "%d", &slot); err != nil || slot < 1 {
				return fmt.Errorf("slot must be a 1-based index, got %q", args[2])
			}

			p, err := openSession()
			if err != nil {
				return err
			}
			return p.SetCell(week, weekday, slot-1, "")
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "copy <from> <to>",
		Short: "Copy one week's grid onto the other",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseWeek(args[0])
			if err != nil {
				return err
			}
			to, err := parseWeek(args[1])
			if err != nil {
				return err
			}
			if from == to {
				return fmt.Errorf("source and destination week are the same")
			}

			p, err := openSession()
			if err != nil {
				return err
			}
			if err := p.CopyWeek(from, to); err != nil {
				return err
			}
			fmt.Printf("Copied week %s to week %s\n", from, to)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear <A|B>",
		Short: "Empty one week's grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := parseWeek(args[0])
			if err != nil {
				return err
			}
			p, err := openSession()
			if err != nil {
				return err
			}
			if err := p.ClearWeek(week); err != nil {
				return err
			}
			fmt.Printf("Cleared week %s\n", week)
			return nil
		},
	})

	return cmd
}

func printWeek(p *planner.Planner, week timetable.Week) {
	tt := p.Timetable()
	ws := tt.Schedule(week)
	slots := p.Slots()

	names := make(map[string]string, len(tt.Subjects))
	width := 7 // at least the dashes row
	for _, s := range tt.Subjects {
		names[s.ID.String()] = s.Name
		if len(s.Name) > width {
			width = len(s.Name)
		}
	}

	fmt.Printf("Woche %s\n\n", week)
	fmt.Printf("%-22s", "")
	for _, d := range []string{"Mo", "Di", "Mi", "Do", "Fr"} {
		fmt.Printf(" %-*s", width, d)
	}
	fmt.Println()

	for slotIndex, slot := range slots {
		fmt.Printf("%-22s", fmt.Sprintf("%s (%s)", slot.Name, slot.TimeRange()))
		for d := 0; d < timetable.NumWeekdays; d++ {
			cell := "·"
			if d < len(ws.Cells) && slotIndex < len(ws.Cells[d]) {
				if name, ok := names[ws.Cells[d][slotIndex]]; ok {
					cell = name
				}
			}
			fmt.Printf(" %-*s", width, cell)
		}
		fmt.Println()
	}
}
