package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"retroboard/internal/model"
)

type JobRepository struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a pending job row with its input payload.
func (r *JobRepository) Create(ctx context.Context, input json.RawMessage) (int, error) {
	query := `
        INSERT INTO pm_jobs (status, input, created_at, updated_at)
        VALUES ('pending', $1, NOW(), NOW())
        RETURNING id
    `
	var id int
	err := r.db.QueryRow(ctx, query, input).Scan(&id)
	return id, err
}

// FindByID returns current job state.
func (r *JobRepository) FindByID(ctx context.Context, id int) (*model.PMJob, error) {
	query := `
        SELECT id, status, input, result, error, created_at, updated_at
        FROM pm_jobs
        WHERE id = $1
    `
	var j model.PMJob
	err := r.db.QueryRow(ctx, query, id).Scan(
		&j.ID,
		&j.Status,
		&j.Input,
		&j.Result,
		&j.Error,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Complete transitions a job to its completed terminal state.
func (r *JobRepository) Complete(ctx context.Context, id int, result json.RawMessage) error {
	query := `
        UPDATE pm_jobs
        SET status = 'completed', result = $1, updated_at = NOW()
        WHERE id = $2
    `
	_, err := r.db.Exec(ctx, query, result, id)
	return err
}

// Fail transitions a job to its error terminal state.
func (r *JobRepository) Fail(ctx context.Context, id int, errMsg string) error {
	query := `
        UPDATE pm_jobs
        SET status = 'error', error = $1, updated_at = NOW()
        WHERE id = $2
    `
	_, err := r.db.Exec(ctx, query, errMsg, id)
	return err
}
