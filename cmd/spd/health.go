package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := planClient.Health(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(map[string]string{"status": status})
			return nil
		}
		fmt.Println(status)
		return nil
	},
}
