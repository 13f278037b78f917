package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ShouldUseColor decides whether CLI output gets ANSI colors. Precedence:
// NO_COLOR (any value disables, per https://no-color.org), then
// CLICOLOR_FORCE=1 (enables even without a TTY), then CLICOLOR=0
// (disables), and finally whether stdout is a terminal.
func ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch {
	case envFlag("CLICOLOR_FORCE") == "1":
		return true
	case envFlag("CLICOLOR") == "0":
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func envFlag(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}
