package main

import (
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/groblegark/seasonplan/internal/client"
	"github.com/groblegark/seasonplan/internal/ui"
)

var (
	serverURL  string
	authToken  string
	jsonOutput bool
	actorName  string
	actorRole  string
	actorDept  string

	planClient client.PlanClient
)

func defaultActor() string {
	out, err := exec.Command("git", "config", "user.name").Output()
	if err == nil {
		name := strings.TrimSpace(string(out))
		if name != "" {
			return name
		}
	}
	return "unknown"
}

func defaultServer() string {
	if s := os.Getenv("SEASONPLAN_SERVER"); s != "" {
		return s
	}
	if u := activeRemoteURL(); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func defaultToken() string {
	if t := os.Getenv("SEASONPLAN_TOKEN"); t != "" {
		return t
	}
	return activeRemoteToken()
}

func actorRef() client.ActorRef {
	return client.ActorRef{Name: actorName, Role: actorRole, Department: actorDept}
}

var rootCmd = &cobra.Command{
	Use:   "spd",
	Short: "CLI client for the seasonplan service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		planClient = client.NewHTTPClient(serverURL, authToken)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if planClient != nil {
			planClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer(), "server base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", defaultToken(), "bearer token for authentication")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&actorName, "actor", defaultActor(), "acting user name")
	rootCmd.PersistentFlags().StringVar(&actorRole, "role", "member", "acting user role (admin, planner, member)")
	rootCmd.PersistentFlags().StringVar(&actorDept, "department", "", "acting user department")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(actionableCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
