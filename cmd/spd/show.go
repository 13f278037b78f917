package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <season-id>",
	Short: "Show a season and its full task plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := planClient.FetchSeason(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(snap)
			return nil
		}
		printSeason(snap.Season)
		if len(snap.Tasks) > 0 {
			fmt.Println()
			printTaskTable(snap.Tasks)
		}
		return nil
	},
}
