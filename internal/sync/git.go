package sync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitDestination commits the plan export to a file in an existing local
// clone and pushes it to origin.
type GitDestination struct {
	repo   string
	file   string
	branch string
}

func NewGitDestination(repo, file, branch string) *GitDestination {
	return &GitDestination{repo: repo, file: file, branch: branch}
}

func (d *GitDestination) Write(ctx context.Context, data []byte) error {
	if _, err := d.run(ctx, "checkout", d.branch); err != nil {
		return err
	}
	// Best effort; origin may not have the branch yet.
	_, _ = d.run(ctx, "pull", "--ff-only", "origin", d.branch)

	target := filepath.Join(d.repo, d.file)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	if _, err := d.run(ctx, "add", d.file); err != nil {
		return err
	}
	staged, err := d.hasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !staged {
		return nil
	}

	if _, err := d.run(ctx, "commit", "-m", "Update season plan export"); err != nil {
		return err
	}
	_, err = d.run(ctx, "push", "origin", d.branch)
	return err
}

// hasStagedChanges reports whether the index differs from HEAD.
func (d *GitDestination) hasStagedChanges(ctx context.Context) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "--cached", "--quiet")
	cmd.Dir = d.repo
	err := cmd.Run()
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, fmt.Errorf("git diff --cached: %w", err)
}

func (d *GitDestination) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = d.repo
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
