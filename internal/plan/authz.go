package plan

import "github.com/groblegark/seasonplan/internal/model"

// Reason is the machine-readable code attached to an authorization denial.
type Reason string

const (
	ReasonSeasonNotOpen          Reason = "season_not_open"
	ReasonCompletedLocked        Reason = "completed_locked"
	ReasonBlocked                Reason = "blocked"
	ReasonPredecessorsIncomplete Reason = "predecessors_incomplete"
	ReasonNotResponsible         Reason = "not_responsible_department"
)

// Message returns a human-readable explanation for the denial reason.
func (r Reason) Message() string {
	switch r {
	case ReasonSeasonNotOpen:
		return "season is not open for editing"
	case ReasonCompletedLocked:
		return "completed tasks can only be edited by admins or planners"
	case ReasonBlocked:
		return "task is blocked"
	case ReasonPredecessorsIncomplete:
		return "preceding tasks are not all completed"
	case ReasonNotResponsible:
		return "actor's department is not responsible for this task"
	}
	return string(r)
}

// Decision is the outcome of an authorization check. When Allowed is false,
// Reason carries the first failing guard.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason,omitempty"`
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r Reason) Decision { return Decision{Allowed: false, Reason: r} }

// CanEdit decides whether the actor may edit the task's editable fields
// (remarks and actual completion; both are gated identically). Guards
// short-circuit in a fixed precedence so the decision is deterministic and
// explainable:
//
//  1. the season must be open,
//  2. completed tasks are locked for everyone below admin/planner,
//  3. blocked tasks are locked for everyone,
//  4. pending tasks must be actionable,
//  5. non-privileged actors must belong to a responsible department.
//
// The same decision both drives edit affordances and defensively rejects
// edits that bypassed them.
func CanEdit(actor model.Actor, t *model.Task, season *model.Season, g *Graph) Decision {
	if season.Status != model.SeasonOpen {
		return deny(ReasonSeasonNotOpen)
	}
	if t.Status == model.TaskCompleted && !actor.Role.Privileged() {
		return deny(ReasonCompletedLocked)
	}
	if t.Status == model.TaskBlocked {
		return deny(ReasonBlocked)
	}
	if t.Status == model.TaskPending && !IsActionable(t, g) {
		return deny(ReasonPredecessorsIncomplete)
	}
	if !actor.Role.Privileged() && !t.ResponsibleFor(actor.Department) {
		return deny(ReasonNotResponsible)
	}
	return allow()
}

// CanChangeSeasonStatus reports whether the actor may change a season's
// lifecycle status. Status changes are privileged operations.
func CanChangeSeasonStatus(actor model.Actor) bool {
	return actor.Role.Privileged()
}
