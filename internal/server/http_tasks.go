package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/groblegark/seasonplan/internal/events"
	"github.com/groblegark/seasonplan/internal/idgen"
	"github.com/groblegark/seasonplan/internal/model"
	"github.com/groblegark/seasonplan/internal/plan"
)

// createTaskInput holds parameters for creating a task.
type createTaskInput struct {
	Order          string           `json:"order"`
	Name           string           `json:"name"`
	Responsible    []string         `json:"responsible,omitempty"`
	PrecedingTasks []string         `json:"preceding_tasks,omitempty"`
	LeadTime       int              `json:"lead_time"`
	ComputedDates  *model.DateRange `json:"computed_dates,omitempty"`
	Remarks        string           `json:"remarks,omitempty"`
}

// handleCreateTask handles POST /v1/seasons/{id}/tasks.
func (s *PlanServer) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	seasonID := r.PathValue("id")

	var in createTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	season, _, g, err := s.loadSnapshot(r.Context(), seasonID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "season not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load season")
		return
	}

	// Order codes are unique per season; catch the collision before the
	// database does for a friendlier error.
	if _, exists := g.ByOrder(in.Order); exists {
		writeError(w, http.StatusBadRequest, "order code "+in.Order+" already in use")
		return
	}

	id, err := idgen.NewTaskID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate ID")
		return
	}

	now := time.Now().UTC()
	task := &model.Task{
		ID:             id,
		SeasonID:       season.ID,
		Order:          in.Order,
		Name:           in.Name,
		Responsible:    in.Responsible,
		PrecedingTasks: in.PrecedingTasks,
		LeadTime:       in.LeadTime,
		Status:         model.TaskPending,
		ComputedDates:  in.ComputedDates,
		Remarks:        in.Remarks,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := model.ValidateTask(task); err != nil {
		writeError(w, http.StatusBadRequest, "invalid task: "+err.Error())
		return
	}

	if err := s.store.CreateTask(r.Context(), task); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicTaskCreated, season.ID, task.ID, "", events.TaskCreated{Task: task})

	writeJSON(w, http.StatusCreated, task)
}

// updateTaskInput is the patch a client submits for a task edit. Nil pointer
// fields mean "don't change"; ClearCompletion removes the completion date.
type updateTaskInput struct {
	Actor            actorInput `json:"actor"`
	Remarks          *string    `json:"remarks,omitempty"`
	ActualCompletion *time.Time `json:"actual_completion,omitempty"`
	ClearCompletion  bool       `json:"clear_completion,omitempty"`
}

// handleUpdateTask handles PATCH /v1/seasons/{id}/tasks/{task_id}.
//
// The submitted patch is re-validated server side: authorization and the
// edit reduction both run again here, so an edit that bypassed client
// affordances is still rejected. On success the response carries the full
// authoritative season and task collection for wholesale snapshot
// replacement.
func (s *PlanServer) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	seasonID := r.PathValue("id")
	taskID := r.PathValue("task_id")

	var in updateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	actor, err := in.Actor.toActor()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	season, tasks, g, err := s.loadSnapshot(r.Context(), seasonID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "season not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load season")
		return
	}

	committed, ok := g.ByID(taskID)
	if !ok {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	if d := plan.CanEdit(actor, committed, season, g); !d.Allowed {
		writeDenied(w, d.Reason)
		return
	}

	// Build the proposed task from the committed one plus the submitted
	// fields, then reduce it to a minimal patch.
	proposed := *committed
	if in.Remarks != nil {
		proposed.Remarks = *in.Remarks
	}
	if in.ClearCompletion {
		proposed.ActualCompletion = nil
	} else if in.ActualCompletion != nil {
		completion := *in.ActualCompletion
		proposed.ActualCompletion = &completion
	}

	patch, rejection := plan.ApplyEdit(committed, &proposed)
	if rejection != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  rejection.Message,
			"reason": string(rejection.Reason),
		})
		return
	}

	message := "no changes"
	if !patch.Empty() {
		updated := patch.Apply(committed)
		updated.UpdatedAt = time.Now().UTC()

		if err := model.ValidateTask(updated); err != nil {
			writeError(w, http.StatusBadRequest, "invalid task: "+err.Error())
			return
		}

		if err := s.store.UpdateTask(r.Context(), updated); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to update task")
			return
		}

		changes := map[string]any{}
		if patch.Remarks != nil {
			changes["remarks"] = *patch.Remarks
		}
		if patch.ActualCompletion != nil {
			changes["actual_completion"] = *patch.ActualCompletion
		}
		if patch.ClearCompletion {
			changes["actual_completion"] = nil
		}
		if patch.Status != nil {
			changes["status"] = *patch.Status
		}
		s.recordAndPublish(r.Context(), events.TopicTaskUpdated, season.ID, updated.ID, actor.Name,
			events.TaskUpdated{Task: updated, Changes: changes})

		// Reload so the response reflects the authoritative state.
		tasks, err = s.store.ListTasks(r.Context(), seasonID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to reload tasks")
			return
		}
		message = "task updated"
	}

	if tasks == nil {
		tasks = []*model.Task{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"season":  season,
		"tasks":   tasks,
		"message": message,
	})
}

// handleGetTimeline handles GET /v1/seasons/{id}/timeline: the reference
// schedule derived from the precedence graph, with unresolved task IDs
// listed separately so callers can distinguish "unknown" from "missing".
func (s *PlanServer) handleGetTimeline(w http.ResponseWriter, r *http.Request) {
	seasonID := r.PathValue("id")

	season, _, g, err := s.loadSnapshot(r.Context(), seasonID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "season not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load season")
		return
	}

	unresolved := []map[string]string{}
	resolver := plan.Resolver{OnUnresolved: func(t *model.Task, reason string) {
		unresolved = append(unresolved, map[string]string{
			"task_id": t.ID,
			"order":   t.Order,
			"reason":  reason,
		})
	}}
	timeline := resolver.Resolve(g, season.CreatedAt)

	writeJSON(w, http.StatusOK, map[string]any{
		"timeline":   timeline,
		"unresolved": unresolved,
	})
}

// handleGetActionable handles GET /v1/seasons/{id}/actionable: the tasks
// whose predecessors are all completed, in display order.
func (s *PlanServer) handleGetActionable(w http.ResponseWriter, r *http.Request) {
	seasonID := r.PathValue("id")

	_, _, g, err := s.loadSnapshot(r.Context(), seasonID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "season not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load season")
		return
	}

	actionable := []*model.Task{}
	for _, t := range g.Tasks() {
		if plan.IsActionable(t, g) {
			actionable = append(actionable, t)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tasks": actionable,
		"total": len(actionable),
	})
}
