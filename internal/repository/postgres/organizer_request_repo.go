package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campusevents/internal/domain"
)

type organizerRequestRepository struct {
	DB *sql.DB
}

func NewOrganizerRequestRepository(db *sql.DB) domain.OrganizerRequestRepository {
	return &organizerRequestRepository{DB: db}
}

const requestColumns = `id, name, email, phone, status, user_id, created_at`

func scanRequest(row interface{ Scan(...any) error }) (*domain.OrganizerRequest, error) {
	req := &domain.OrganizerRequest{}
	var status string
	if err := row.Scan(&req.ID, &req.Name, &req.Email, &req.Phone, &status, &req.UserID, &req.CreatedAt); err != nil {
		return nil, err
	}
	req.Status = domain.OrganizerRequestStatus(status)
	return req, nil
}

func (r *organizerRequestRepository) Create(ctx context.Context, req *domain.OrganizerRequest) error {
	if req.Status == "" {
		req.Status = domain.RequestPending
	}
	query := `
		INSERT INTO organizer_requests (name, email, phone, status, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, req.Name, req.Email, req.Phone, string(req.Status), req.UserID, req.CreatedAt).Scan(&req.ID)
}

func (r *organizerRequestRepository) GetByID(ctx context.Context, id string) (*domain.OrganizerRequest, error) {
	req, err := scanRequest(r.DB.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM organizer_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *organizerRequestRepository) List(ctx context.Context) ([]*domain.OrganizerRequest, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+requestColumns+` FROM organizer_requests ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*domain.OrganizerRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

func (r *organizerRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.OrganizerRequestStatus) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE organizer_requests SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
