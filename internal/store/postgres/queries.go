package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/groblegark/seasonplan/internal/model"
)

// seasonColumns is the column list used for SELECT statements on the seasons table.
const seasonColumns = `id, name, buyer_id, status, description, require_attention,
	created_at, updated_at`

// taskColumns is the column list used for SELECT statements on the tasks table.
const taskColumns = `id, season_id, order_code, name, responsible, preceding_tasks,
	lead_time, status, computed_start, computed_end, actual_completion, remarks,
	attachments, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateSeason(ctx context.Context, db executor, s *model.Season) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO seasons (
			id, name, buyer_id, status, description, require_attention,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID,
		s.Name,
		nullString(s.BuyerID),
		string(s.Status),
		s.Description,
		pq.Array(s.RequireAttention),
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func queryGetSeason(ctx context.Context, db executor, id string) (*model.Season, error) {
	row := db.QueryRowContext(ctx, `SELECT `+seasonColumns+` FROM seasons WHERE id = $1`, id)
	return scanSeason(row)
}

func queryListSeasons(ctx context.Context, db executor) ([]*model.Season, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+seasonColumns+` FROM seasons ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seasons []*model.Season
	for rows.Next() {
		s, err := scanSeason(rows)
		if err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

func queryUpdateSeason(ctx context.Context, db executor, s *model.Season) error {
	res, err := db.ExecContext(ctx, `
		UPDATE seasons SET
			name = $2,
			buyer_id = $3,
			status = $4,
			description = $5,
			require_attention = $6,
			updated_at = $7
		WHERE id = $1`,
		s.ID,
		s.Name,
		nullString(s.BuyerID),
		string(s.Status),
		s.Description,
		pq.Array(s.RequireAttention),
		s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func queryCreateTask(ctx context.Context, db executor, t *model.Task) error {
	var computedStart, computedEnd sql.NullTime
	if t.ComputedDates != nil {
		computedStart = sql.NullTime{Time: t.ComputedDates.Start, Valid: true}
		computedEnd = sql.NullTime{Time: t.ComputedDates.End, Valid: true}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, season_id, order_code, name, responsible, preceding_tasks,
			lead_time, status, computed_start, computed_end, actual_completion,
			remarks, attachments, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15
		)`,
		t.ID,
		t.SeasonID,
		t.Order,
		t.Name,
		pq.Array(t.Responsible),
		pq.Array(t.PrecedingTasks),
		t.LeadTime,
		string(t.Status),
		computedStart,
		computedEnd,
		nullTimePtr(t.ActualCompletion),
		t.Remarks,
		jsonbBytes(t.Attachments),
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func queryGetTask(ctx context.Context, db executor, seasonID, taskID string) (*model.Task, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE season_id = $1 AND id = $2`,
		seasonID, taskID)
	return scanTask(row)
}

func queryListTasks(ctx context.Context, db executor, seasonID string) ([]*model.Task, error) {
	// Spreadsheet-column order: shorter codes first, then lexicographic.
	rows, err := db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE season_id = $1
		 ORDER BY length(order_code), order_code`,
		seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func queryUpdateTask(ctx context.Context, db executor, t *model.Task) error {
	var computedStart, computedEnd sql.NullTime
	if t.ComputedDates != nil {
		computedStart = sql.NullTime{Time: t.ComputedDates.Start, Valid: true}
		computedEnd = sql.NullTime{Time: t.ComputedDates.End, Valid: true}
	}
	res, err := db.ExecContext(ctx, `
		UPDATE tasks SET
			order_code = $3,
			name = $4,
			responsible = $5,
			preceding_tasks = $6,
			lead_time = $7,
			status = $8,
			computed_start = $9,
			computed_end = $10,
			actual_completion = $11,
			remarks = $12,
			attachments = $13,
			updated_at = $14
		WHERE season_id = $1 AND id = $2`,
		t.SeasonID,
		t.ID,
		t.Order,
		t.Name,
		pq.Array(t.Responsible),
		pq.Array(t.PrecedingTasks),
		t.LeadTime,
		string(t.Status),
		computedStart,
		computedEnd,
		nullTimePtr(t.ActualCompletion),
		t.Remarks,
		jsonbBytes(t.Attachments),
		t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func queryRecordEvent(ctx context.Context, db executor, e *model.Event) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO events (topic, season_id, task_id, actor, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, created_at`,
		e.Topic,
		e.SeasonID,
		nullString(e.TaskID),
		e.Actor,
		jsonbBytes(e.Payload),
	).Scan(&e.ID, &e.CreatedAt)
}

func queryGetEvents(ctx context.Context, db executor, seasonID string) ([]*model.Event, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, topic, season_id, task_id, actor, payload, created_at
		FROM events WHERE season_id = $1 ORDER BY created_at DESC, id DESC`,
		seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// requireRowAffected returns sql.ErrNoRows when an UPDATE matched nothing,
// so callers can map missing rows to not-found.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
