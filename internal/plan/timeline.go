package plan

import (
	"log/slog"
	"time"

	"github.com/groblegark/seasonplan/internal/model"
)

// Timeline maps task IDs to their reference schedule. The map may be
// partial: tasks in a precedence cycle or behind a dangling reference carry
// no entry, and callers must treat a missing entry as "timeline unknown".
type Timeline map[string]model.DateRange

// extraPasses is the failsafe margin added to the task count when bounding
// resolver iterations, so a cycle can never spin the loop forever.
const extraPasses = 5

// Resolver computes reference timelines. The zero value is ready to use.
type Resolver struct {
	// OnUnresolved is invoked once per resolve for every task left without
	// a timeline, with a short reason ("unknown predecessor ..." or
	// "unresolved, possible dependency cycle"). When nil, a slog warning is
	// emitted instead. Resolution failure is never an error.
	OnUnresolved func(task *model.Task, reason string)
}

// ResolveTimeline computes a reference timeline with default unresolved
// reporting (slog warnings).
func ResolveTimeline(g *Graph, seasonStart time.Time) Timeline {
	var r Resolver
	return r.Resolve(g, seasonStart)
}

// Resolve derives a start/end date per task from the precedence graph by
// iterative relaxation: each pass resolves every task whose predecessors are
// all resolved, and the loop stops when a pass makes no progress or the
// pass bound (task count + 5) is hit. For an acyclic, fully-resolvable
// graph every task resolves within longest-path-length passes.
//
// A task's start is the later of the season start and the latest end among
// its resolved predecessors; its end is start + leadTime days. A predecessor
// code naming no task is permanently unresolved, not "no dependency": the
// referencing task (and anything depending on it) gets no timeline.
func (r *Resolver) Resolve(g *Graph, seasonStart time.Time) Timeline {
	resolved := make(Timeline, g.Len())
	maxPasses := g.Len() + extraPasses

	for pass := 0; pass < maxPasses; pass++ {
		progress := false
		for _, t := range g.Tasks() {
			if _, done := resolved[t.ID]; done {
				continue
			}

			start, ok := r.startFor(t, g, seasonStart, resolved)
			if !ok {
				continue
			}

			resolved[t.ID] = model.DateRange{
				Start: start,
				End:   start.AddDate(0, 0, t.LeadTime),
			}
			progress = true
		}
		if !progress || len(resolved) == g.Len() {
			break
		}
	}

	r.reportUnresolved(g, resolved)
	return resolved
}

// startFor computes the reference start for t, or reports that t cannot be
// resolved yet (or ever, for dangling references).
func (r *Resolver) startFor(t *model.Task, g *Graph, seasonStart time.Time, resolved Timeline) (time.Time, bool) {
	start := seasonStart
	for _, code := range t.PrecedingTasks {
		pred, ok := g.ByOrder(code)
		if !ok {
			// Dangling reference: never resolvable.
			return time.Time{}, false
		}
		span, done := resolved[pred.ID]
		if !done {
			return time.Time{}, false
		}
		if span.End.After(start) {
			start = span.End
		}
	}
	return start, true
}

func (r *Resolver) reportUnresolved(g *Graph, resolved Timeline) {
	for _, t := range g.Tasks() {
		if _, ok := resolved[t.ID]; ok {
			continue
		}
		reason := "unresolved, possible dependency cycle"
		for _, code := range t.PrecedingTasks {
			if _, ok := g.ByOrder(code); !ok {
				reason = "unknown predecessor " + code
				break
			}
		}
		if r.OnUnresolved != nil {
			r.OnUnresolved(t, reason)
			continue
		}
		slog.Warn("reference timeline unresolved",
			"task_id", t.ID,
			"order", t.Order,
			"reason", reason,
		)
	}
}
