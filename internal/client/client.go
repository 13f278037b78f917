// Package client provides a transport-agnostic interface for the seasonplan
// service and an HTTP/JSON implementation that talks to its REST API.
package client

import (
	"context"
	"time"

	"github.com/groblegark/seasonplan/internal/model"
)

// PlanClient is the interface the CLI and the planner session use to
// communicate with the seasonplan server. It is implemented by HTTPClient
// (default) and can be backed by any transport.
type PlanClient interface {
	// Seasons
	CreateSeason(ctx context.Context, req *CreateSeasonRequest) (*model.Season, error)
	ListSeasons(ctx context.Context) (*ListSeasonsResponse, error)
	FetchSeason(ctx context.Context, id string) (*Snapshot, error)
	UpdateSeasonDetails(ctx context.Context, id string, req *UpdateSeasonDetailsRequest) (*model.Season, error)
	UpdateSeasonStatus(ctx context.Context, id string, actor ActorRef, status string) (*model.Season, error)

	// Tasks
	CreateTask(ctx context.Context, seasonID string, req *CreateTaskRequest) (*model.Task, error)
	UpdateTask(ctx context.Context, seasonID, taskID string, req *UpdateTaskRequest) (*UpdateTaskResponse, error)

	// Derived views
	GetTimeline(ctx context.Context, seasonID string) (*TimelineResponse, error)
	GetActionable(ctx context.Context, seasonID string) (*ActionableResponse, error)

	// Events
	GetEvents(ctx context.Context, seasonID string) ([]*model.Event, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// ActorRef identifies the acting user on mutating requests.
type ActorRef struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

// Snapshot is the full authoritative state of one season: the season record
// and its complete task collection in display order.
type Snapshot struct {
	Season *model.Season `json:"season"`
	Tasks  []*model.Task `json:"tasks"`
}

// CreateSeasonRequest holds parameters for creating a season.
type CreateSeasonRequest struct {
	Name             string   `json:"name"`
	BuyerID          string   `json:"buyer_id,omitempty"`
	Description      string   `json:"description,omitempty"`
	RequireAttention []string `json:"require_attention,omitempty"`
}

// ListSeasonsResponse is the response from ListSeasons.
type ListSeasonsResponse struct {
	Seasons []*model.Season `json:"seasons"`
	Total   int             `json:"total"`
}

// UpdateSeasonDetailsRequest holds optional season fields.
// Nil pointer fields mean "don't change".
type UpdateSeasonDetailsRequest struct {
	Actor            ActorRef  `json:"actor"`
	Name             *string   `json:"name,omitempty"`
	BuyerID          *string   `json:"buyer_id,omitempty"`
	Description      *string   `json:"description,omitempty"`
	RequireAttention *[]string `json:"require_attention,omitempty"`
}

// CreateTaskRequest holds parameters for creating a task.
type CreateTaskRequest struct {
	Order          string           `json:"order"`
	Name           string           `json:"name"`
	Responsible    []string         `json:"responsible,omitempty"`
	PrecedingTasks []string         `json:"preceding_tasks,omitempty"`
	LeadTime       int              `json:"lead_time"`
	ComputedDates  *model.DateRange `json:"computed_dates,omitempty"`
	Remarks        string           `json:"remarks,omitempty"`
}

// UpdateTaskRequest is the patch submitted for a task edit. Nil pointer
// fields mean "don't change"; ClearCompletion removes the completion date.
type UpdateTaskRequest struct {
	Actor            ActorRef   `json:"actor"`
	Remarks          *string    `json:"remarks,omitempty"`
	ActualCompletion *time.Time `json:"actual_completion,omitempty"`
	ClearCompletion  bool       `json:"clear_completion,omitempty"`
}

// UpdateTaskResponse carries the authoritative post-edit snapshot.
type UpdateTaskResponse struct {
	Season  *model.Season `json:"season"`
	Tasks   []*model.Task `json:"tasks"`
	Message string        `json:"message"`
}

// UnresolvedTask names a task the timeline resolver could not schedule.
type UnresolvedTask struct {
	TaskID string `json:"task_id"`
	Order  string `json:"order"`
	Reason string `json:"reason"`
}

// TimelineResponse is the response from GetTimeline.
type TimelineResponse struct {
	Timeline   map[string]model.DateRange `json:"timeline"`
	Unresolved []UnresolvedTask           `json:"unresolved"`
}

// ActionableResponse is the response from GetActionable.
type ActionableResponse struct {
	Tasks []*model.Task `json:"tasks"`
	Total int           `json:"total"`
}
