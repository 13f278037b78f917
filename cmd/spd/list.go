package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List seasons",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := planClient.ListSeasons(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(resp)
			return nil
		}
		printSeasonList(resp.Seasons, resp.Total)
		return nil
	},
}
