package main

import (
	"github.com/spf13/cobra"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline <season-id>",
	Short: "Show the derived reference timeline for a season",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := planClient.FetchSeason(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		resp, err := planClient.GetTimeline(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(resp)
			return nil
		}
		printTimeline(snap.Tasks, resp)
		return nil
	},
}
