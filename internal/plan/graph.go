// Package plan implements the task dependency timeline and permission engine:
// display ordering, reference timeline resolution, actionability, edit
// authorization, and edit-to-patch reduction. Everything here is pure and
// synchronous; persistence and transport live elsewhere.
package plan

import "github.com/groblegark/seasonplan/internal/model"

// Graph is an immutable index over one season's task snapshot: the tasks in
// stable display order plus a lookup from order code to task. It is rebuilt
// whenever the task collection changes identity and shared by every other
// component instead of re-scanning the slice.
type Graph struct {
	tasks   []*model.Task
	byOrder map[string]*model.Task
}

// NewGraph builds a graph from an unordered task collection. The input slice
// is not mutated.
func NewGraph(tasks []*model.Task) *Graph {
	sorted := make([]*model.Task, len(tasks))
	copy(sorted, tasks)
	model.SortTasks(sorted)

	byOrder := make(map[string]*model.Task, len(sorted))
	for _, t := range sorted {
		byOrder[t.Order] = t
	}

	return &Graph{tasks: sorted, byOrder: byOrder}
}

// Tasks returns the tasks in display order: shorter order codes first,
// equal-length codes lexicographically.
func (g *Graph) Tasks() []*model.Task {
	return g.tasks
}

// ByOrder resolves an order code to its task. The second return is false for
// dangling codes.
func (g *Graph) ByOrder(code string) (*model.Task, bool) {
	t, ok := g.byOrder[code]
	return t, ok
}

// ByID resolves a task identifier to its task.
func (g *Graph) ByID(id string) (*model.Task, bool) {
	for _, t := range g.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Len returns the number of tasks in the graph.
func (g *Graph) Len() int {
	return len(g.tasks)
}
