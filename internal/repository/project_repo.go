package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"retroboard/internal/model"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `
        id, name, client, project_type, cms, integrations,
        offer_value, estimated_profit_margin, went_well, went_wrong,
        scope_creep, scope_creep_notes, status, project_outcome,
        created_at, updated_at
`

func scanProject(row interface{ Scan(...any) error }, p *model.Project) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Client,
		&p.ProjectType,
		&p.CMS,
		&p.Integrations,
		&p.OfferValue,
		&p.EstimatedProfitMargin,
		&p.WentWell,
		&p.WentWrong,
		&p.ScopeCreep,
		&p.ScopeCreepNotes,
		&p.Status,
		&p.ProjectOutcome,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// Create inserts a new project in draft state and returns the stored row.
func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	query := `
        INSERT INTO projects
            (name, client, project_type, cms, integrations, offer_value,
             estimated_profit_margin, went_well, went_wrong, scope_creep,
             scope_creep_notes, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, '', '', FALSE, '', 'draft', NOW(), NOW())
        RETURNING ` + projectColumns
	var created model.Project
	err := scanProject(r.db.QueryRow(ctx, query,
		p.Name, p.Client, p.ProjectType, p.CMS, p.Integrations,
		p.OfferValue, p.EstimatedProfitMargin,
	), &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// FindByID returns one project by id.
func (r *ProjectRepository) FindByID(ctx context.Context, id int) (*model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	var p model.Project
	if err := scanProject(r.db.QueryRow(ctx, query, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all projects, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update overwrites the mutable fields of a project and bumps updated_at.
func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	query := `
        UPDATE projects SET
            name = $1, client = $2, project_type = $3, cms = $4,
            integrations = $5, offer_value = $6, estimated_profit_margin = $7,
            went_well = $8, went_wrong = $9, scope_creep = $10,
            scope_creep_notes = $11, status = $12, project_outcome = $13,
            updated_at = NOW()
        WHERE id = $14
        RETURNING ` + projectColumns
	var updated model.Project
	err := scanProject(r.db.QueryRow(ctx, query,
		p.Name, p.Client, p.ProjectType, p.CMS, p.Integrations,
		p.OfferValue, p.EstimatedProfitMargin, p.WentWell, p.WentWrong,
		p.ScopeCreep, p.ScopeCreepNotes, p.Status, p.ProjectOutcome, p.ID,
	), &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a project; child rows cascade at the schema level.
func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}
