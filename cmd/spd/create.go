package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groblegark/seasonplan/internal/client"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new season",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buyer, _ := cmd.Flags().GetString("buyer")
		description, _ := cmd.Flags().GetString("description")
		attention, _ := cmd.Flags().GetStringSlice("attention")

		season, err := planClient.CreateSeason(cmd.Context(), &client.CreateSeasonRequest{
			Name:             args[0],
			BuyerID:          buyer,
			Description:      description,
			RequireAttention: attention,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			printJSON(season)
			return nil
		}
		fmt.Printf("created season %s\n", season.ID)
		printSeason(season)
		return nil
	},
}

func init() {
	createCmd.Flags().String("buyer", "", "buyer identifier")
	createCmd.Flags().String("description", "", "season description")
	createCmd.Flags().StringSlice("attention", nil, "departments flagged for follow-up")
}
