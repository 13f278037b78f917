package sync

import (
	"context"
	"database/sql"

	"github.com/groblegark/seasonplan/internal/model"
	"github.com/groblegark/seasonplan/internal/store"
)

// mockStore is an in-memory store.Store used by export and scheduler tests.
type mockStore struct {
	seasons map[string]*model.Season
	tasks   map[string][]*model.Task // season ID -> tasks
	events  []*model.Event
}

func newMockStore() *mockStore {
	return &mockStore{
		seasons: make(map[string]*model.Season),
		tasks:   make(map[string][]*model.Task),
	}
}

func (m *mockStore) CreateSeason(_ context.Context, season *model.Season) error {
	m.seasons[season.ID] = season
	return nil
}

func (m *mockStore) GetSeason(_ context.Context, id string) (*model.Season, error) {
	s, ok := m.seasons[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

func (m *mockStore) ListSeasons(_ context.Context) ([]*model.Season, error) {
	var result []*model.Season
	for _, s := range m.seasons {
		result = append(result, s)
	}
	return result, nil
}

func (m *mockStore) UpdateSeason(_ context.Context, season *model.Season) error {
	m.seasons[season.ID] = season
	return nil
}

func (m *mockStore) CreateTask(_ context.Context, task *model.Task) error {
	m.tasks[task.SeasonID] = append(m.tasks[task.SeasonID], task)
	return nil
}

func (m *mockStore) GetTask(_ context.Context, seasonID, taskID string) (*model.Task, error) {
	for _, t := range m.tasks[seasonID] {
		if t.ID == taskID {
			return t, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStore) ListTasks(_ context.Context, seasonID string) ([]*model.Task, error) {
	tasks := m.tasks[seasonID]
	result := make([]*model.Task, len(tasks))
	copy(result, tasks)
	model.SortTasks(result)
	return result, nil
}

func (m *mockStore) UpdateTask(_ context.Context, task *model.Task) error {
	for i, t := range m.tasks[task.SeasonID] {
		if t.ID == task.ID {
			m.tasks[task.SeasonID][i] = task
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *mockStore) RecordEvent(_ context.Context, event *model.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockStore) GetEvents(_ context.Context, seasonID string) ([]*model.Event, error) {
	var result []*model.Event
	for _, e := range m.events {
		if e.SeasonID == seasonID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }
