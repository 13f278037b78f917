package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var actionableCmd = &cobra.Command{
	Use:   "actionable <season-id>",
	Short: "List tasks whose predecessors are all completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := planClient.GetActionable(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(resp)
			return nil
		}
		if resp.Total == 0 {
			fmt.Println("no actionable tasks")
			return nil
		}
		printTaskTable(resp.Tasks)
		return nil
	},
}
