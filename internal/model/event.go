package model

import (
	"encoding/json"
	"time"
)

// Event is an audit-trail record for a season or task mutation.
type Event struct {
	ID        int64           `json:"id"`
	Topic     string          `json:"topic"`
	SeasonID  string          `json:"season_id"`
	TaskID    string          `json:"task_id,omitempty"`
	Actor     string          `json:"actor,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
