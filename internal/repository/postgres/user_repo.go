package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campusevents/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `id, name, email, phone, role, avatar, bio, blocked, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.UserProfile, error) {
	u := &domain.UserProfile{}
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &role, &u.Avatar, &u.Bio, &u.Blocked, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.UserProfile) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.Phone, string(u.Role), u.Avatar, u.Bio, u.Blocked, u.CreatedAt, u.UpdatedAt)
	return mapUserWriteErr(err)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	if email == "" {
		return nil, domain.ErrUserNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.getOne(ctx, query, email)
}

func (r *userRepository) GetByRole(ctx context.Context, role domain.Role) (*domain.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at, id LIMIT 1`
	return r.getOne(ctx, query, string(role))
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*domain.UserProfile, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.UserProfile, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*domain.UserProfile
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, u *domain.UserProfile) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, phone = $4, role = $5, avatar = $6, bio = $7, blocked = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, u.ID, u.Name, u.Email, u.Phone, string(u.Role), u.Avatar, u.Bio, u.Blocked).Scan(&u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return mapUserWriteErr(err)
}

func mapUserWriteErr(err error) error {
	switch uniqueConstraint(err) {
	case "":
		return err
	case "users_pkey":
		return domain.ErrInvalidInput
	default:
		return domain.ErrDuplicateEmail
	}
}
