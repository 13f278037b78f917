package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events <season-id>",
	Short: "Show the audit trail for a season",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := planClient.GetEvents(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(events)
			return nil
		}
		if len(events) == 0 {
			fmt.Println("no events")
			return nil
		}
		printEvents(events)
		return nil
	},
}
