package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <season-id> <status>",
	Short: "Change a season's status (open, on_hold, closed, canceled)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		season, err := planClient.UpdateSeasonStatus(cmd.Context(), args[0], actorRef(), args[1])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(season)
			return nil
		}
		fmt.Printf("season %s is now %s\n", season.ID, season.Status)
		return nil
	},
}
