package postgres

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"github.com/groblegark/seasonplan/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanSeason scans a single row into a model.Season.
// The row must contain columns in the order defined by seasonColumns.
func scanSeason(row scannable) (*model.Season, error) {
	var s model.Season
	var (
		buyerID     sql.NullString
		description sql.NullString
		attention   pq.StringArray
	)

	err := row.Scan(
		&s.ID,
		&s.Name,
		&buyerID,
		&s.Status,
		&description,
		&attention,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.BuyerID = buyerID.String
	s.Description = description.String
	s.RequireAttention = attention

	return &s, nil
}

// scanTask scans a single row into a model.Task.
// The row must contain columns in the order defined by taskColumns.
func scanTask(row scannable) (*model.Task, error) {
	var t model.Task
	var (
		responsible      pq.StringArray
		preceding        pq.StringArray
		computedStart    sql.NullTime
		computedEnd      sql.NullTime
		actualCompletion sql.NullTime
		remarks          sql.NullString
		attachments      []byte
	)

	err := row.Scan(
		&t.ID,
		&t.SeasonID,
		&t.Order,
		&t.Name,
		&responsible,
		&preceding,
		&t.LeadTime,
		&t.Status,
		&computedStart,
		&computedEnd,
		&actualCompletion,
		&remarks,
		&attachments,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Responsible = responsible
	t.PrecedingTasks = preceding
	t.Remarks = remarks.String

	if computedStart.Valid && computedEnd.Valid {
		t.ComputedDates = &model.DateRange{Start: computedStart.Time, End: computedEnd.Time}
	}
	if actualCompletion.Valid {
		at := actualCompletion.Time
		t.ActualCompletion = &at
	}
	if len(attachments) > 0 {
		t.Attachments = json.RawMessage(attachments)
	}

	return &t, nil
}

// scanEvent scans a single row into a model.Event.
func scanEvent(row scannable) (*model.Event, error) {
	var e model.Event
	var (
		taskID  sql.NullString
		actor   sql.NullString
		payload []byte
	)

	err := row.Scan(
		&e.ID,
		&e.Topic,
		&e.SeasonID,
		&taskID,
		&actor,
		&payload,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.TaskID = taskID.String
	e.Actor = actor.String
	if len(payload) > 0 {
		e.Payload = json.RawMessage(payload)
	}

	return &e, nil
}

// nullString converts an empty string to a NULL value.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullTimePtr converts a nil *time.Time to a NULL value.
func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// jsonbBytes returns nil for empty JSON so the column stores NULL instead of "".
func jsonbBytes(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
