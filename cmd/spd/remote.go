package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// Remote is a named server profile stored in the user's state directory.
type Remote struct {
	URL         string `toml:"url"`
	Token       string `toml:"token,omitempty"`
	Description string `toml:"description,omitempty"`
}

// RemotesConfig is the on-disk shape of remotes.toml.
type RemotesConfig struct {
	Active  string            `toml:"active"`
	Remotes map[string]Remote `toml:"remotes"`
}

// remoteConfigPath returns ~/.local/state/seasonplan/remotes.toml, creating
// the directory with owner-only permissions since it may hold tokens.
func remoteConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "seasonplan")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "remotes.toml"), nil
}

func loadRemotesConfig() (RemotesConfig, error) {
	path, err := remoteConfigPath()
	if err != nil {
		return RemotesConfig{}, err
	}
	cfg := RemotesConfig{Remotes: map[string]Remote{}}
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return RemotesConfig{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if cfg.Remotes == nil {
		cfg.Remotes = map[string]Remote{}
	}
	return cfg, nil
}

func saveRemotesConfig(cfg RemotesConfig) error {
	path, err := remoteConfigPath()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

var (
	activeRemoteOnce sync.Once
	activeRemote     Remote
)

// resolveActiveRemote loads the active remote once per process; used for
// the --server and --token flag defaults.
func resolveActiveRemote() Remote {
	activeRemoteOnce.Do(func() {
		cfg, err := loadRemotesConfig()
		if err != nil || cfg.Active == "" {
			return
		}
		activeRemote = cfg.Remotes[cfg.Active]
	})
	return activeRemote
}

func activeRemoteURL() string   { return resolveActiveRemote().URL }
func activeRemoteToken() string { return resolveActiveRemote().Token }

// truncateToken shortens a token for display so full secrets never land in
// terminal scrollback.
func truncateToken(tok string, mask bool) string {
	if len(tok) <= 8 {
		return tok
	}
	if mask {
		return tok[:8] + strings.Repeat("*", len(tok)-8)
	}
	return tok[:8] + "..."
}

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Manage named server remotes",
	// Remote subcommands only touch the local config file, so the usual
	// client setup is skipped.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var remoteAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add or update a named remote",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, url := args[0], args[1]
		token, _ := cmd.Flags().GetString("token")
		desc, _ := cmd.Flags().GetString("description")

		cfg, err := loadRemotesConfig()
		if err != nil {
			return err
		}
		cfg.Remotes[name] = Remote{URL: url, Token: token, Description: desc}
		if err := saveRemotesConfig(cfg); err != nil {
			return err
		}
		cmd.Printf("remote %q added (%s)\n", name, url)
		return nil
	},
}

var remoteRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a named remote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		cfg, err := loadRemotesConfig()
		if err != nil {
			return err
		}
		if _, ok := cfg.Remotes[name]; !ok {
			return fmt.Errorf("remote %q not found", name)
		}
		delete(cfg.Remotes, name)
		if cfg.Active == name {
			cfg.Active = ""
		}
		if err := saveRemotesConfig(cfg); err != nil {
			return err
		}
		cmd.Printf("remote %q removed\n", name)
		return nil
	},
}

var remoteUseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Set the active remote (no args clears it)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRemotesConfig()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			cfg.Active = ""
			if err := saveRemotesConfig(cfg); err != nil {
				return err
			}
			cmd.Println("active remote cleared")
			return nil
		}
		name := args[0]
		if _, ok := cfg.Remotes[name]; !ok {
			return fmt.Errorf("remote %q not found", name)
		}
		cfg.Active = name
		if err := saveRemotesConfig(cfg); err != nil {
			return err
		}
		cmd.Printf("active remote set to %q\n", name)
		return nil
	},
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all remotes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRemotesConfig()
		if err != nil {
			return err
		}
		if len(cfg.Remotes) == 0 {
			cmd.Println("no remotes configured")
			return nil
		}

		names := make([]string, 0, len(cfg.Remotes))
		for name := range cfg.Remotes {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  NAME\tURL\tTOKEN\tDESCRIPTION")
		for _, name := range names {
			r := cfg.Remotes[name]
			marker := "  "
			if name == cfg.Active {
				marker = "* "
			}
			fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n",
				marker, name, r.URL, truncateToken(r.Token, false), r.Description)
		}
		return w.Flush()
	},
}

var remoteShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show details for a remote (defaults to active)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadRemotesConfig()
		if err != nil {
			return err
		}

		name := cfg.Active
		if len(args) == 1 {
			name = args[0]
		}
		if name == "" {
			return fmt.Errorf("no active remote; specify a name or run 'spd remote use <name>'")
		}
		r, ok := cfg.Remotes[name]
		if !ok {
			return fmt.Errorf("remote %q not found", name)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		suffix := ""
		if name == cfg.Active {
			suffix = " (active)"
		}
		fmt.Fprintf(w, "name:\t%s%s\n", name, suffix)
		if r.Description != "" {
			fmt.Fprintf(w, "description:\t%s\n", r.Description)
		}
		fmt.Fprintf(w, "url:\t%s\n", r.URL)
		if r.Token != "" {
			fmt.Fprintf(w, "token:\t%s\n", truncateToken(r.Token, true))
		}
		return w.Flush()
	},
}

func init() {
	remoteAddCmd.Flags().String("token", "", "bearer token for authentication")
	remoteAddCmd.Flags().String("description", "", "human-readable description of the remote")

	remoteCmd.AddCommand(remoteAddCmd, remoteRemoveCmd, remoteListCmd, remoteUseCmd, remoteShowCmd)
}
