package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"retroboard/internal/model"
)

type ProfileHoursRepository struct {
	db *pgxpool.Pool
}

func NewProfileHoursRepository(db *pgxpool.Pool) *ProfileHoursRepository {
	return &ProfileHoursRepository{db: db}
}

// ListByProject returns every profile-hours row for a project.
func (r *ProfileHoursRepository) ListByProject(ctx context.Context, projectID int) ([]model.ProfileHours, error) {
	query := `
        SELECT id, project_id, profile, estimated_hours, actual_hours
        FROM profile_hours
        WHERE project_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := []model.ProfileHours{}
	for rows.Next() {
		var ph model.ProfileHours
		if err := rows.Scan(&ph.ID, &ph.ProjectID, &ph.Profile, &ph.EstimatedHours, &ph.ActualHours); err != nil {
			return nil, err
		}
		hours = append(hours, ph)
	}
	return hours, rows.Err()
}

// Upsert writes one (project, profile) row. The unique index keeps the
// at-most-one-row-per-profile invariant.
func (r *ProfileHoursRepository) Upsert(ctx context.Context, ph *model.ProfileHours) error {
	query := `
        INSERT INTO profile_hours (project_id, profile, estimated_hours, actual_hours)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (project_id, profile)
        DO UPDATE SET estimated_hours = $3, actual_hours = $4
        RETURNING id
    `
	return r.db.QueryRow(ctx, query, ph.ProjectID, ph.Profile, ph.EstimatedHours, ph.ActualHours).Scan(&ph.ID)
}

// Delete removes one profile-hours row.
func (r *ProfileHoursRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM profile_hours WHERE id = $1`, id)
	return err
}
