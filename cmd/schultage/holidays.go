package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/username/schultage/internal/holiday"
	"github.com/username/schultage/pkg/dateutil"
)

func holidaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Manage holiday intervals",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show the effective holiday list",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}

			set := p.Holidays()
			if len(set) == 0 {
				fmt.Println("No holidays.")
				return nil
			}
			for _, iv := range set {
				tag := ""
				switch iv.Source {
				case holiday.SourceUser:
					tag = " (eigene)"
				case holiday.SourceExcursion:
					tag = " (Exkursion)"
				}
				fmt.Printf("%s .. %s  %s%s\n", iv.From.Format(), iv.To.Format(), iv.Name, tag)
			}
			return nil
		},
	})

	addCmd := &cobra.Command{
		Use:   "add <from> <to> [name]",
		Short: "Add a holiday interval (dates as YYYY-MM-DD)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}

			name := ""
			if len(args) == 3 {
				name = args[2]
			}
			if err := p.AddHoliday(args[0], args[1], name); err != nil {
				return err
			}
			fmt.Printf("Added %s .. %s\n", args[0], args[1])
			return nil
		},
	}
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <from> <to>",
		Short: "Remove the holiday interval with these exact bounds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}

			from := dateutil.ParseDay(args[0])
			to := dateutil.ParseDay(args[1])
			if !from.Valid() || !to.Valid() {
				return fmt.Errorf("dates must be YYYY-MM-DD")
			}

			for _, iv := range p.Holidays() {
				if iv.From == from && iv.To == to {
					if err := p.RemoveHoliday(iv); err != nil {
						return err
					}
					fmt.Printf("Removed %s .. %s\n", args[0], args[1])
					return nil
				}
			}
			return fmt.Errorf("no holiday %s .. %s", args[0], args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Discard all edits and restore the built-in holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}
			if err := p.ResetHolidays(); err != nil {
				return err
			}
			fmt.Println("Holidays reset to defaults.")
			return nil
		},
	})

	return cmd
}

func excursionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "excursions",
		Short: "Manage single-day excursions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show all excursions",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}

			rec := p.HolidayRecord()
			if len(rec.Excursions) == 0 {
				fmt.Println("No excursions.")
				return nil
			}
			for _, e := range rec.Excursions {
				name := e.Name
				if name == "" {
					name = "Exkursion"
				}
				fmt.Printf("%s  %s\n", e.Date, name)
			}
			if rec.ExcursionsAsHolidays {
				fmt.Println("\nExcursions count as school-free days.")
			} else {
				fmt.Println("\nExcursions are informational only.")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <date> [name]",
		Short: "Add an excursion day (YYYY-MM-DD)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}

			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			if err := p.AddExcursion(args[0], name); err != nil {
				return err
			}
			fmt.Printf("Added excursion on %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <date>",
		Short: "Remove the excursion on this date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}
			if err := p.RemoveExcursion(args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed excursion on %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "as-holidays <on|off>",
		Short: "Toggle whether excursions count as school-free days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseBool(args[0])
			if err != nil {
				return err
			}
			p, err := openSession()
			if err != nil {
				return err
			}
			return p.SetExcursionsAsHolidays(v)
		},
	})

	return cmd
}
