// Package sync periodically exports the full season-plan dataset as JSONL
// and ships it to one or more destinations (S3, git).
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/groblegark/seasonplan/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version     string    `json:"version"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	SeasonCount int       `json:"season_count"`
	TaskCount   int       `json:"task_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportJSONL writes all seasons and their tasks from the store as JSONL to w.
// Seasons are sorted by ID; each season's tasks follow it in display order.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	seasons, err := s.ListSeasons(ctx)
	if err != nil {
		return fmt.Errorf("list seasons: %w", err)
	}

	sort.Slice(seasons, func(i, j int) bool {
		return seasons[i].ID < seasons[j].ID
	})

	taskTotal := 0
	tasksBySeason := make(map[string][]any, len(seasons))
	for _, season := range seasons {
		tasks, err := s.ListTasks(ctx, season.ID)
		if err != nil {
			return fmt.Errorf("list tasks for %s: %w", season.ID, err)
		}
		rows := make([]any, len(tasks))
		for i, t := range tasks {
			rows[i] = t
		}
		tasksBySeason[season.ID] = rows
		taskTotal += len(tasks)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:     "1",
		Type:        "header",
		Timestamp:   time.Now().UTC(),
		SeasonCount: len(seasons),
		TaskCount:   taskTotal,
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, season := range seasons {
		if err := enc.Encode(record{Type: "season", Data: season}); err != nil {
			return fmt.Errorf("encode season %s: %w", season.ID, err)
		}
		for _, t := range tasksBySeason[season.ID] {
			if err := enc.Encode(record{Type: "task", Data: t}); err != nil {
				return fmt.Errorf("encode task in %s: %w", season.ID, err)
			}
		}
	}

	return nil
}
