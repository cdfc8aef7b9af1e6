package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"retroboard/internal/model"
)

type EstimateRepository struct {
	db *pgxpool.Pool
}

func NewEstimateRepository(db *pgxpool.Pool) *EstimateRepository {
	return &EstimateRepository{db: db}
}

func (r *EstimateRepository) Create(ctx context.Context, e *model.AIEstimate) error {
	query := `
        INSERT INTO ai_estimates (brief_text, project_type, cms, integrations, estimate, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query, e.BriefText, e.ProjectType, e.CMS, e.Integrations, e.Estimate).Scan(&e.ID, &e.CreatedAt)
}

func (r *EstimateRepository) List(ctx context.Context, limit int) ([]model.AIEstimate, error) {
	query := `
        SELECT id, brief_text, project_type, cms, integrations, estimate, created_at
        FROM ai_estimates
        ORDER BY created_at DESC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	estimates := []model.AIEstimate{}
	for rows.Next() {
		var e model.AIEstimate
		if err := rows.Scan(&e.ID, &e.BriefText, &e.ProjectType, &e.CMS, &e.Integrations, &e.Estimate, &e.CreatedAt); err != nil {
			return nil, err
		}
		estimates = append(estimates, e)
	}
	return estimates, rows.Err()
}

func (r *EstimateRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM ai_estimates WHERE id = $1`, id)
	return err
}
