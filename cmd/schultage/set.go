package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func setCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change persisted settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "end-date [YYYY-MM-DD]",
		Short: "Override the last school day (no argument reverts to the configured default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}
			value := ""
			if len(args) == 1 {
				value = args[0]
			}
			if err := p.SetEndDate(value); err != nil {
				return err
			}
			fmt.Printf("End date: %s\n", p.EndDate().Format())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reference-date [YYYY-MM-DD]",
		Short: "Anchor the A/B rotation on a date in week A (no argument unsets it)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}
			value := ""
			if len(args) == 1 {
				value = args[0]
			}
			if err := p.SetReferenceDate(value); err != nil {
				return err
			}
			if ref := p.ReferenceDate(); ref.Valid() {
				fmt.Printf("Reference date: %s (week A)\n", ref.Format())
			} else {
				fmt.Println("Reference date unset, hours are disabled.")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "include-today <on|off>",
		Short: "Count the current day in all totals",
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
			return p.SetIncludeToday(v)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "display-blocks <on|off>",
		Short: "Show real clock durations instead of nominal hours",
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
			return p.SetDisplayBlocks(v)
		},
	})

	return cmd
}
