package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campusevents/internal/domain"
)

type credentialRepository struct {
	DB *sql.DB
}

func NewCredentialRepository(db *sql.DB) domain.CredentialRepository {
	return &credentialRepository{DB: db}
}

func (r *credentialRepository) Create(ctx context.Context, c *domain.Credential) error {
	query := `
		INSERT INTO credentials (user_id, email, password_hash, salt)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, c.UserID, c.Email, c.PasswordHash, c.Salt)
	if uniqueConstraint(err) != "" {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *credentialRepository) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	query := `
		SELECT user_id, email, password_hash, salt
		FROM credentials
		WHERE lower(email) = lower($1)
	`
	c := &domain.Credential{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&c.UserID, &c.Email, &c.PasswordHash, &c.Salt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
