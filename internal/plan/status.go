package plan

import (
	"fmt"

	"github.com/groblegark/seasonplan/internal/model"
)

// ErrStatusUnchanged rejects a requested transition to the season's
// currently-active status as a no-op.
var ErrStatusUnchanged = fmt.Errorf("season already has the requested status")

// ValidateStatusChange checks a requested season status transition. The
// lifecycle is deliberately flat: any explicit transition between distinct
// valid states is permitted, and editing restrictions are enforced
// separately by CanEdit (only open seasons accept task edits).
func ValidateStatusChange(current, next model.SeasonStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("invalid season status %q", next)
	}
	if next == current {
		return ErrStatusUnchanged
	}
	return nil
}
