package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RMahshie/nonflow/internal/repository"
	"github.com/RMahshie/nonflow/pkg/models"
	"github.com/google/uuid"
)

//go:embed schema.sql
var schema string

// PostgresRunRepository implements RunRepository for PostgreSQL
type PostgresRunRepository struct {
	db *sql.DB
}

// NewPostgresRunRepository creates a new PostgreSQL run repository
func NewPostgresRunRepository(db *sql.DB) *PostgresRunRepository {
	return &PostgresRunRepository{db: db}
}

var _ repository.RunRepository = (*PostgresRunRepository)(nil)

// Migrate creates the process_runs table if it does not exist
func (r *PostgresRunRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Create inserts a new run record
func (r *PostgresRunRepository) Create(ctx context.Context, run *models.ProcessRun) error {
	points, err := json.Marshal(run.Points)
	if err != nil {
		return fmt.Errorf("failed to marshal points: %w", err)
	}

	var index sql.NullFloat64
	if run.Index != nil {
		index = sql.NullFloat64{Float64: *run.Index, Valid: true}
	}

	query := `
		INSERT INTO process_runs (id, process_key, fluid, model, t0, v0, n_points, poly_index, span_ratio, points, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.db.ExecContext(ctx, query,
		run.ID,
		run.ProcessKey,
		run.Fluid,
		run.Model,
		run.T0,
		run.V0,
		run.NPoints,
		index,
		run.SpanRatio,
		string(points),
		run.CreatedAt)

	return err
}

const selectRun = `
		SELECT id, process_key, fluid, model, t0, v0, n_points, poly_index, span_ratio, points, created_at
		FROM process_runs`

// GetByID retrieves a run by ID
func (r *PostgresRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProcessRun, error) {
	row := r.db.QueryRowContext(ctx, selectRun+` WHERE id = $1`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRecent retrieves the most recent runs, newest first
func (r *PostgresRunRepository) ListRecent(ctx context.Context, limit int) ([]*models.ProcessRun, error) {
	rows, err := r.db.QueryContext(ctx, selectRun+` ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.ProcessRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*models.ProcessRun, error) {
	var run models.ProcessRun
	var index sql.NullFloat64
	var points []byte

	err := s.Scan(
		&run.ID,
		&run.ProcessKey,
		&run.Fluid,
		&run.Model,
		&run.T0,
		&run.V0,
		&run.NPoints,
		&index,
		&run.SpanRatio,
		&points,
		&run.CreatedAt)
	if err != nil {
		return nil, err
	}

	if index.Valid {
		run.Index = &index.Float64
	}
	if err := json.Unmarshal(points, &run.Points); err != nil {
		return nil, fmt.Errorf("failed to unmarshal points: %w", err)
	}

	return &run, nil
}
