package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func subjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "Manage the subject list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show all subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}

			tt := p.Timetable()
			if len(tt.Subjects) == 0 {
				fmt.Println("No subjects.")
				return nil
			}
			for _, s := range tt.Subjects {
				note := ""
				if tt.Settings[s.ID].OnlyFirstSemester {
					note = "  (nur 1. Halbjahr)"
				}
				fmt.Printf("%s%s\n", s.Name, note)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}
			if _, err := p.AddSubject(args[0]); err != nil {
				return err
			}
			fmt.Printf("Added subject %q\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a subject, keeping its schedule and settings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}
			if err := p.RenameSubject(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed %q to %q\n", args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a subject and clear its schedule cells",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}
			if err := p.RemoveSubject(args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed subject %q\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "first-semester <name> <on|off>",
		Short: "Count a subject only until the end of the first semester",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseBool(args[1])
			if err != nil {
				return err
			}
			p, err := openSession()
			if err != nil {
				return err
			}
			return p.SetSubjectFirstSemester(args[0], v)
		},
	})

	return cmd
}
