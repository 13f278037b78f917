package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/groblegark/seasonplan/internal/events"
	"github.com/groblegark/seasonplan/internal/model"
	"github.com/groblegark/seasonplan/internal/plan"
	"github.com/groblegark/seasonplan/internal/store"
)

// PlanServer serves the season-plan HTTP API. Every mutating handler returns
// the full authoritative season (and, for task mutations, the full task
// collection) so clients can replace their snapshot wholesale instead of
// merging partial updates.
type PlanServer struct {
	store     store.Store
	publisher events.Publisher
}

// NewPlanServer returns a new PlanServer backed by the given store and publisher.
func NewPlanServer(s store.Store, p events.Publisher) *PlanServer {
	return &PlanServer{store: s, publisher: p}
}

// recordAndPublish persists an event to the store and publishes it to NATS.
// Both operations are best-effort; failures are logged but do not block the caller.
func (s *PlanServer) recordAndPublish(ctx context.Context, topic, seasonID, taskID, actor string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal event", "topic", topic, "season_id", seasonID, "error", err)
		return
	}
	if err := s.store.RecordEvent(ctx, &model.Event{
		Topic:    topic,
		SeasonID: seasonID,
		TaskID:   taskID,
		Actor:    actor,
		Payload:  payload,
	}); err != nil {
		slog.Warn("failed to record event", "topic", topic, "season_id", seasonID, "error", err)
	}
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "season_id", seasonID, "error", err)
	}
}

// inputError indicates invalid user input. The HTTP layer maps this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }

// actorInput carries the acting user on mutating requests. Role strings are
// case-normalized here, at the boundary.
type actorInput struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

func (in actorInput) toActor() (model.Actor, error) {
	role, err := model.ParseRole(in.Role)
	if err != nil {
		return model.Actor{}, inputError(err.Error())
	}
	return model.Actor{Name: in.Name, Role: role, Department: in.Department}, nil
}

// loadSnapshot fetches a season with its full task collection and builds the
// task graph the handlers share.
func (s *PlanServer) loadSnapshot(ctx context.Context, seasonID string) (*model.Season, []*model.Task, *plan.Graph, error) {
	season, err := s.store.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get season: %w", err)
	}
	tasks, err := s.store.ListTasks(ctx, seasonID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list tasks: %w", err)
	}
	return season, tasks, plan.NewGraph(tasks), nil
}
