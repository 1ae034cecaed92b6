package postgres

import (
	"context"
	"database/sql"
	"testing"

	"campusevents/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestCredentialRepository_Create(t *testing.T) {
	ctx := context.Background()
	cred := &domain.Credential{UserID: "u1", Email: "ada@example.com", PasswordHash: "hash", Salt: "salt"}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO credentials \(user_id, email, password_hash, salt\)`).
					WithArgs("u1", "ada@example.com", "hash", "salt").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "duplicate email",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO credentials`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "credentials_email_key"})
			},
			wantErr: domain.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewCredentialRepository(db).Create(ctx, cred)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCredentialRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT user_id, email, password_hash, salt\s+FROM credentials`).
			WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "email", "password_hash", "salt"}).
				AddRow("u1", "ada@example.com", "hash", "salt"))

		c, err := NewCredentialRepository(db).GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		require.Equal(t, "u1", c.UserID)
		require.Equal(t, "hash", c.PasswordHash)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM credentials`).WillReturnError(sql.ErrNoRows)
		_, err = NewCredentialRepository(db).GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
