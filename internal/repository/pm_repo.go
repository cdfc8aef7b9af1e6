package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"retroboard/internal/model"
)

// PMRepository covers the task-generation history and saved templates.
type PMRepository struct {
	db *pgxpool.Pool
}

func NewPMRepository(db *pgxpool.Pool) *PMRepository {
	return &PMRepository{db: db}
}

func (r *PMRepository) CreateGeneration(ctx context.Context, g *model.PMGeneration) error {
	query := `
        INSERT INTO pm_generations (project_name, project_brief, tasks, summary, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query, g.ProjectName, g.ProjectBrief, g.Tasks, g.Summary).Scan(&g.ID, &g.CreatedAt)
}

func (r *PMRepository) ListGenerations(ctx context.Context, limit int) ([]model.PMGeneration, error) {
	query := `
        SELECT id, project_name, project_brief, tasks, summary, created_at
        FROM pm_generations
        ORDER BY created_at DESC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	generations := []model.PMGeneration{}
	for rows.Next() {
		var g model.PMGeneration
		if err := rows.Scan(&g.ID, &g.ProjectName, &g.ProjectBrief, &g.Tasks, &g.Summary, &g.CreatedAt); err != nil {
			return nil, err
		}
		generations = append(generations, g)
	}
	return generations, rows.Err()
}

func (r *PMRepository) DeleteGeneration(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM pm_generations WHERE id = $1`, id)
	return err
}

func (r *PMRepository) CreateTemplate(ctx context.Context, t *model.PMTemplate) error {
	query := `
        INSERT INTO pm_templates (name, description, tasks, project_type, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query, t.Name, t.Description, t.Tasks, t.ProjectType).Scan(&t.ID, &t.CreatedAt)
}

func (r *PMRepository) ListTemplates(ctx context.Context) ([]model.PMTemplate, error) {
	query := `
        SELECT id, name, description, tasks, project_type, created_at
        FROM pm_templates
        ORDER BY name
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []model.PMTemplate{}
	for rows.Next() {
		var t model.PMTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Tasks, &t.ProjectType, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *PMRepository) DeleteTemplate(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM pm_templates WHERE id = $1`, id)
	return err
}
