package store

import (
	"context"

	"github.com/groblegark/seasonplan/internal/model"
)

// Store defines the persistence interface for seasons and their tasks.
type Store interface {
	// Season CRUD
	CreateSeason(ctx context.Context, season *model.Season) error
	GetSeason(ctx context.Context, id string) (*model.Season, error)
	ListSeasons(ctx context.Context) ([]*model.Season, error)
	UpdateSeason(ctx context.Context, season *model.Season) error

	// Tasks
	CreateTask(ctx context.Context, task *model.Task) error
	GetTask(ctx context.Context, seasonID, taskID string) (*model.Task, error)
	ListTasks(ctx context.Context, seasonID string) ([]*model.Task, error)
	UpdateTask(ctx context.Context, task *model.Task) error

	// Events
	RecordEvent(ctx context.Context, event *model.Event) error
	GetEvents(ctx context.Context, seasonID string) ([]*model.Event, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
