// Package ui holds terminal styling helpers for the CLI.
package ui

import (
	"fmt"

	"github.com/groblegark/seasonplan/internal/model"
)

// ANSI256 color codes.
const (
	colorAccent    = 74  // blue
	colorMuted     = 245 // medium gray
	colorCompleted = 71  // green
	colorPending   = 179 // yellow
	colorBlocked   = 167 // red
)

var noColor bool

func render(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string { return render(colorAccent, s) }

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string { return render(colorMuted, s) }

// RenderTaskStatus colors a task status: green for completed, yellow for
// pending, red for blocked.
func RenderTaskStatus(status model.TaskStatus) string {
	switch status {
	case model.TaskCompleted:
		return render(colorCompleted, status.String())
	case model.TaskBlocked:
		return render(colorBlocked, status.String())
	default:
		return render(colorPending, status.String())
	}
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
