package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"retroboard/internal/model"
)

type ChangeRequestRepository struct {
	db *pgxpool.Pool
}

func NewChangeRequestRepository(db *pgxpool.Pool) *ChangeRequestRepository {
	return &ChangeRequestRepository{db: db}
}

func (r *ChangeRequestRepository) ListByProject(ctx context.Context, projectID int) ([]model.ChangeRequest, error) {
	query := `
        SELECT id, project_id, description, amount, created_at
        FROM change_requests
        WHERE project_id = $1
        ORDER BY created_at ASC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crs := []model.ChangeRequest{}
	for rows.Next() {
		var cr model.ChangeRequest
		if err := rows.Scan(&cr.ID, &cr.ProjectID, &cr.Description, &cr.Amount, &cr.CreatedAt); err != nil {
			return nil, err
		}
		crs = append(crs, cr)
	}
	return crs, rows.Err()
}

func (r *ChangeRequestRepository) Create(ctx context.Context, cr *model.ChangeRequest) error {
	query := `
        INSERT INTO change_requests (project_id, description, amount, created_at)
        VALUES ($1, $2, $3, NOW())
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query, cr.ProjectID, cr.Description, cr.Amount).Scan(&cr.ID, &cr.CreatedAt)
}

func (r *ChangeRequestRepository) Update(ctx context.Context, cr *model.ChangeRequest) error {
	query := `
        UPDATE change_requests
        SET description = $1, amount = $2
        WHERE id = $3
    `
	_, err := r.db.Exec(ctx, query, cr.Description, cr.Amount, cr.ID)
	return err
}

// Delete removes a change request. Its hours go first so the delete never
// leaves orphans even without the schema cascade.
func (r *ChangeRequestRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM change_request_hours WHERE change_request_id = $1`, id); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `DELETE FROM change_requests WHERE id = $1`, id)
	return err
}

// ListHours returns the logged hours for a set of change requests in one
// round-trip, keyed by change request id.
func (r *ChangeRequestRepository) ListHours(ctx context.Context, changeRequestIDs []int) (map[int][]model.ChangeRequestHours, error) {
	byCR := map[int][]model.ChangeRequestHours{}
	if len(changeRequestIDs) == 0 {
		return byCR, nil
	}

	query := `
        SELECT id, change_request_id, profile, actual_hours
        FROM change_request_hours
        WHERE change_request_id = ANY($1)
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, changeRequestIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var h model.ChangeRequestHours
		if err := rows.Scan(&h.ID, &h.ChangeRequestID, &h.Profile, &h.ActualHours); err != nil {
			return nil, err
		}
		byCR[h.ChangeRequestID] = append(byCR[h.ChangeRequestID], h)
	}
	return byCR, rows.Err()
}

// UpsertHours writes one (change request, profile) hours row.
func (r *ChangeRequestRepository) UpsertHours(ctx context.Context, h *model.ChangeRequestHours) error {
	query := `
        INSERT INTO change_request_hours (change_request_id, profile, actual_hours)
        VALUES ($1, $2, $3)
        ON CONFLICT (change_request_id, profile)
        DO UPDATE SET actual_hours = $3
        RETURNING id
    `
	return r.db.QueryRow(ctx, query, h.ChangeRequestID, h.Profile, h.ActualHours).Scan(&h.ID)
}

func (r *ChangeRequestRepository) DeleteHours(ctx context.Context, id int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM change_request_hours WHERE id = $1`, id)
	return err
}
