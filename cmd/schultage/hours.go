package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func hoursCmd() *cobra.Command {
	var blocks bool

	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Remaining class time per subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openSession()
			if err != nil {
				return err
			}

			if !p.ReferenceDate().Valid() {
				return fmt.Errorf("no reference date set, run 'schultage set reference-date <YYYY-MM-DD>' first")
			}
			// The flag is sticky, like the mode toggle it replaces.
			if cmd.Flags().Changed("blocks") && blocks != p.Settings().DisplayBlocks {
				if err := p.SetDisplayBlocks(blocks); err != nil {
					return err
				}
			}

			res := p.RemainingHours()
			if len(res.SubjectSeconds) == 0 {
				fmt.Println("No scheduled class time remaining.")
				return nil
			}

			names := make([]string, 0, len(res.SubjectSeconds))
			width := 0
			for name := range res.SubjectSeconds {
				names = append(names, name)
				if len(name) > width {
					width = len(name)
				}
			}
			sort.Strings(names)

			for _, name := range names {
				fmt.Printf("%-*s  %10s  (%s Blöcke)\n",
					width, name,
					formatDuration(res.SubjectSeconds[name]),
					formatBlocks(res.SubjectBlocks[name]))
			}
			fmt.Printf("%-*s  %10s  (%s Blöcke)\n",
				width, "Gesamt", formatDuration(res.TotalSeconds), formatBlocks(res.TotalBlocks))

			return nil
		},
	}

	cmd.Flags().BoolVar(&blocks, "blocks", false, "Use real clock durations instead of nominal hours")
	return cmd
}
