package events

import (
	"context"

	"github.com/groblegark/seasonplan/internal/model"
)

// Event topic constants
const (
	TopicSeasonCreated       = "seasonplan.season.created"
	TopicSeasonUpdated       = "seasonplan.season.updated"
	TopicSeasonStatusChanged = "seasonplan.season.status_changed"
	TopicTaskCreated         = "seasonplan.task.created"
	TopicTaskUpdated         = "seasonplan.task.updated"
)

// Event types

type SeasonCreated struct {
	Season *model.Season `json:"season"`
}

type SeasonUpdated struct {
	Season  *model.Season  `json:"season"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

type SeasonStatusChanged struct {
	Season *model.Season      `json:"season"`
	From   model.SeasonStatus `json:"from"`
	To     model.SeasonStatus `json:"to"`
}

type TaskCreated struct {
	Task *model.Task `json:"task"`
}

type TaskUpdated struct {
	Task    *model.Task    `json:"task"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
