package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"retroboard/internal/model"
)

type ExternalCostRepository struct {
	db *pgxpool.Pool
}

func NewExternalCostRepository(db *pgxpool.Pool) *ExternalCostRepository {
	return &ExternalCostRepository{db: db}
}

func (r *ExternalCostRepository) ListByProject(ctx context.Context, projectID int) ([]model.ExternalCost, error) {
	query := `
        SELECT id, project_id, description, cost_type, estimated_cost, actual_cost, notes
        FROM external_costs
        WHERE project_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	costs := []model.ExternalCost{}
	for rows.Next() {
		var ec model.ExternalCost
		if err := rows.Scan(&ec.ID, &ec.ProjectID, &ec.Description, &ec.CostType, &ec.EstimatedCost, &ec.ActualCost, &ec.Notes); err != nil {
			return nil, err
		}
		costs = append(costs, ec)
	}
	return costs, rows.Err()
}

func (r *ExternalCostRepository) Create(ctx context.Context, ec *model.ExternalCost) error {
	query := `
        INSERT INTO external_costs (project_id, description, cost_type, estimated_cost, actual_cost, notes)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	return r.db.QueryRow(ctx, query, ec.ProjectID, ec.Description, ec.CostType, ec.EstimatedCost, ec.ActualCost, ec.Notes).Scan(&ec.ID)
}

func (r *ExternalCostRepository) Update(ctx context.Context, ec *model.ExternalCost) error {
	query := `
        UPDATE external_costs
        SET description = $1, cost_type = $2, estimated_cost = $3, actual_cost = $4, notes = $5
        WHERE id = $6
    `
	_, err := r.db.Exec(ctx, query, ec.Description, ec.CostType, ec.EstimatedCost, ec.ActualCost, ec.Notes, ec.ID)
	return err
}

func (r *ExternalCostRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM external_costs WHERE id = $1`, id)
	return err
}
