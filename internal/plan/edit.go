package plan

import (
	"fmt"
	"time"

	"github.com/groblegark/seasonplan/internal/model"
)

// Patch is the minimal field set an accepted edit must persist. Nil pointer
// fields mean "don't change". Status is never user-chosen: it is filled in
// only for the implicit pending→completed transition.
type Patch struct {
	Remarks          *string           `json:"remarks,omitempty"`
	ActualCompletion *time.Time        `json:"actual_completion,omitempty"`
	ClearCompletion  bool              `json:"clear_completion,omitempty"`
	Status           *model.TaskStatus `json:"status,omitempty"`
}

// Empty reports whether the patch changes nothing (a no-op edit).
func (p Patch) Empty() bool {
	return p.Remarks == nil && p.ActualCompletion == nil && !p.ClearCompletion && p.Status == nil
}

// RejectReason is the machine-readable code attached to an edit rejection.
type RejectReason string

const (
	RejectInvalidCompletionDate RejectReason = "invalid_completion_date"
)

// Rejection explains why a proposed edit was not reduced to a patch. It is
// a local, synchronous result value; no state is mutated on rejection.
type Rejection struct {
	Reason  RejectReason `json:"reason"`
	Message string       `json:"message"`
}

// Error lets a Rejection travel as an error across layers that want one.
func (r *Rejection) Error() string {
	return string(r.Reason) + ": " + r.Message
}

// ApplyEdit diffs a proposed task against the committed one, restricted to
// the editable fields (remarks, actual completion), and reduces the edit to
// a minimal consistent patch.
//
// An empty diff returns an empty patch and nil rejection: a no-op success.
// Setting a completion date on a task that is not yet completed implicitly
// adds status=completed to the patch; the engine never transitions a task
// out of completed.
func ApplyEdit(committed, proposed *model.Task) (Patch, *Rejection) {
	var p Patch

	if proposed.Remarks != committed.Remarks {
		remarks := proposed.Remarks
		p.Remarks = &remarks
	}

	switch {
	case proposed.ActualCompletion == nil && committed.ActualCompletion != nil:
		p.ClearCompletion = true
	case proposed.ActualCompletion != nil && !sameInstant(committed.ActualCompletion, proposed.ActualCompletion):
		completion := *proposed.ActualCompletion
		if committed.ComputedDates != nil && beforeDay(completion, committed.ComputedDates.Start) {
			return Patch{}, &Rejection{
				Reason: RejectInvalidCompletionDate,
				Message: fmt.Sprintf("completion date %s falls before planned start %s",
					completion.Format("2006-01-02"),
					committed.ComputedDates.Start.Format("2006-01-02")),
			}
		}
		p.ActualCompletion = &completion
	}

	if p.ActualCompletion != nil && committed.Status != model.TaskCompleted {
		status := model.TaskCompleted
		p.Status = &status
	}

	return p, nil
}

// Apply folds a patch into a copy of the task, leaving the original
// untouched. Callers use it to build the record handed to persistence.
func (p Patch) Apply(t *model.Task) *model.Task {
	out := *t
	if p.Remarks != nil {
		out.Remarks = *p.Remarks
	}
	if p.ClearCompletion {
		out.ActualCompletion = nil
	}
	if p.ActualCompletion != nil {
		completion := *p.ActualCompletion
		out.ActualCompletion = &completion
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	return &out
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// beforeDay reports whether a falls on an earlier calendar day than b,
// compared in UTC. Equal days are not "before": a completion on the planned
// start day is accepted.
func beforeDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
