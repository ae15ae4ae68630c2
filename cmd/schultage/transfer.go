package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <holidays|timetable>",
		Short: "Write state as JSON to a file or stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}

			var data []byte
			switch args[0] {
			case "holidays":
				data, err = p.ExportHolidays()
			case "timetable":
				data, err = p.ExportTimetable()
			default:
				return fmt.Errorf("unknown export target %q, expected holidays or timetable", args[0])
			}
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Printf("Exported %s to %s\n", args[0], output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <holidays|timetable> <file>",
		Short: "Replace state from a JSON export",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[1], err)
			}

			p, err := openSession()
			if err != nil {
				return err
			}

			switch args[0] {
			case "holidays":
				err = p.ImportHolidays(data)
			case "timetable":
				err = p.ImportTimetable(data)
			default:
				return fmt.Errorf("unknown import target %q, expected holidays or timetable", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Printf("Imported %s from %s\n", args[0], args[1])
			return nil
		},
	}
}
