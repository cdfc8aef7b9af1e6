package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"retroboard/internal/model"
)

type ScopeItemRepository struct {
	db *pgxpool.Pool
}

func NewScopeItemRepository(db *pgxpool.Pool) *ScopeItemRepository {
	return &ScopeItemRepository{db: db}
}

func (r *ScopeItemRepository) ListByProject(ctx context.Context, projectID int) ([]model.ScopeItem, error) {
	query := `
        SELECT id, project_id, name, type, planned_count, actual_count, notes
        FROM scope_items
        WHERE project_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.ScopeItem{}
	for rows.Next() {
		var si model.ScopeItem
		if err := rows.Scan(&si.ID, &si.ProjectID, &si.Name, &si.Type, &si.PlannedCount, &si.ActualCount, &si.Notes); err != nil {
			return nil, err
		}
		items = append(items, si)
	}
	return items, rows.Err()
}

func (r *ScopeItemRepository) Create(ctx context.Context, si *model.ScopeItem) error {
	query := `
        INSERT INTO scope_items (project_id, name, type, planned_count, actual_count, notes)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	return r.db.QueryRow(ctx, query, si.ProjectID, si.Name, si.Type, si.PlannedCount, si.ActualCount, si.Notes).Scan(&si.ID)
}

func (r *ScopeItemRepository) Update(ctx context.Context, si *model.ScopeItem) error {
	query := `
        UPDATE scope_items
        SET name = $1, type = $2, planned_count = $3, actual_count = $4, notes = $5
        WHERE id = $6
    `
	_, err := r.db.Exec(ctx, query, si.Name, si.Type, si.PlannedCount, si.ActualCount, si.Notes, si.ID)
	return err
}

func (r *ScopeItemRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM scope_items WHERE id = $1`, id)
	return err
}
