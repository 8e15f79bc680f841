package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"buildaide/core/types"
	"buildaide/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS expenses (
	id           UUID PRIMARY KEY,
	description  TEXT NOT NULL,
	amount       NUMERIC(14, 2) NOT NULL CHECK (amount > 0),
	category     TEXT NOT NULL,
	project_name TEXT NOT NULL DEFAULT '',
	incurred_on  DATE NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS expenses_project_created_idx ON expenses (project_name, created_at DESC);
`

const selectColumns = `SELECT id, description, amount, category, project_name, incurred_on, created_at FROM expenses`

// OpenPostgres opens a pooled connection from storage configuration
func OpenPostgres(cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// Migrate creates the expenses table if it does not exist
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate expenses schema: %w", err)
	}
	return nil
}

// PostgresRepository stores expenses in PostgreSQL
type PostgresRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgresRepository creates a repository over db
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db, now: time.Now}
}

func (r *PostgresRepository) Create(ctx context.Context, e *types.Expense) error {
	if err := Validate(e); err != nil {
		return err
	}
	stamp(e, r.now())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, description, amount, category, project_name, incurred_on, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Description, e.Amount, string(e.Category), e.ProjectName, e.IncurredOn, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (*types.Expense, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter types.ExpenseFilter) ([]*types.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		selectColumns+` WHERE ($1 = '' OR project_name = $1) AND ($2 = '' OR category = $2) ORDER BY created_at DESC`,
		filter.ProjectName, string(filter.Category),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var out []*types.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner) (*types.Expense, error) {
	var (
		e        types.Expense
		category string
	)
	if err := s.Scan(&e.ID, &e.Description, &e.Amount, &category, &e.ProjectName, &e.IncurredOn, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Category = types.ExpenseCategory(category)
	return &e, nil
}
