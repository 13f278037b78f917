// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/groblegark/seasonplan/internal/model"
	"github.com/groblegark/seasonplan/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateSeason(ctx context.Context, season *model.Season) error {
	return queryCreateSeason(ctx, s.db, season)
}

func (s *PostgresStore) GetSeason(ctx context.Context, id string) (*model.Season, error) {
	return queryGetSeason(ctx, s.db, id)
}

func (s *PostgresStore) ListSeasons(ctx context.Context) ([]*model.Season, error) {
	return queryListSeasons(ctx, s.db)
}

func (s *PostgresStore) UpdateSeason(ctx context.Context, season *model.Season) error {
	return queryUpdateSeason(ctx, s.db, season)
}

func (s *PostgresStore) CreateTask(ctx context.Context, task *model.Task) error {
	return queryCreateTask(ctx, s.db, task)
}

func (s *PostgresStore) GetTask(ctx context.Context, seasonID, taskID string) (*model.Task, error) {
	return queryGetTask(ctx, s.db, seasonID, taskID)
}

func (s *PostgresStore) ListTasks(ctx context.Context, seasonID string) ([]*model.Task, error) {
	return queryListTasks(ctx, s.db, seasonID)
}

func (s *PostgresStore) UpdateTask(ctx context.Context, task *model.Task) error {
	return queryUpdateTask(ctx, s.db, task)
}

func (s *PostgresStore) RecordEvent(ctx context.Context, event *model.Event) error {
	return queryRecordEvent(ctx, s.db, event)
}

func (s *PostgresStore) GetEvents(ctx context.Context, seasonID string) ([]*model.Event, error) {
	return queryGetEvents(ctx, s.db, seasonID)
}

// RunInTransaction executes fn inside a database transaction. The Store
// passed to fn runs all queries against the transaction; it is committed
// when fn returns nil and rolled back otherwise.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txStore := &txPostgresStore{tx: sqlTx}
	if err := fn(txStore); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txPostgresStore is a Store implementation scoped to a single transaction.
type txPostgresStore struct {
	tx *sql.Tx
}

var _ store.Store = (*txPostgresStore)(nil)

func (s *txPostgresStore) CreateSeason(ctx context.Context, season *model.Season) error {
	return queryCreateSeason(ctx, s.tx, season)
}

func (s *txPostgresStore) GetSeason(ctx context.Context, id string) (*model.Season, error) {
	return queryGetSeason(ctx, s.tx, id)
}

func (s *txPostgresStore) ListSeasons(ctx context.Context) ([]*model.Season, error) {
	return queryListSeasons(ctx, s.tx)
}

func (s *txPostgresStore) UpdateSeason(ctx context.Context, season *model.Season) error {
	return queryUpdateSeason(ctx, s.tx, season)
}

func (s *txPostgresStore) CreateTask(ctx context.Context, task *model.Task) error {
	return queryCreateTask(ctx, s.tx, task)
}

func (s *txPostgresStore) GetTask(ctx context.Context, seasonID, taskID string) (*model.Task, error) {
	return queryGetTask(ctx, s.tx, seasonID, taskID)
}

func (s *txPostgresStore) ListTasks(ctx context.Context, seasonID string) ([]*model.Task, error) {
	return queryListTasks(ctx, s.tx, seasonID)
}

func (s *txPostgresStore) UpdateTask(ctx context.Context, task *model.Task) error {
	return queryUpdateTask(ctx, s.tx, task)
}

func (s *txPostgresStore) RecordEvent(ctx context.Context, event *model.Event) error {
	return queryRecordEvent(ctx, s.tx, event)
}

func (s *txPostgresStore) GetEvents(ctx context.Context, seasonID string) ([]*model.Event, error) {
	return queryGetEvents(ctx, s.tx, seasonID)
}

// RunInTransaction on a transaction store reuses the existing transaction.
func (s *txPostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction-scoped store.
func (s *txPostgresStore) Close() error { return nil }
