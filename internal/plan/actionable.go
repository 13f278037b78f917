package plan

import "github.com/groblegark/seasonplan/internal/model"

// IsActionable reports whether a task can currently be acted on: it is
// pending and every predecessor resolves to a completed task. The result is
// derived display state, recomputed per query and never persisted.
//
// A predecessor code that fails to resolve makes the task not actionable
// (fail-closed), matching the timeline resolver's treatment of dangling
// references.
func IsActionable(t *model.Task, g *Graph) bool {
	if t.Status == model.TaskCompleted || t.Status == model.TaskBlocked {
		return false
	}
	for _, code := range t.PrecedingTasks {
		pred, ok := g.ByOrder(code)
		if !ok {
			return false
		}
		if pred.Status != model.TaskCompleted {
			return false
		}
	}
	return true
}
