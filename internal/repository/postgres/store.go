// Package postgres implements domain.AccountStore on PostgreSQL via database/sql and lib/pq.
package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"campusevents/internal/domain"
)

type store struct {
	db *sql.DB
}

// NewStore returns a domain.AccountStore backed by db.
func NewStore(db *sql.DB) domain.AccountStore {
	return &store{db: db}
}

func (s *store) Users() domain.UserRepository             { return NewUserRepository(s.db) }
func (s *store) Credentials() domain.CredentialRepository { return NewCredentialRepository(s.db) }
func (s *store) Events() domain.EventRepository           { return NewEventRepository(s.db) }
func (s *store) OrganizerRequests() domain.OrganizerRequestRepository {
	return NewOrganizerRequestRepository(s.db)
}

const uniqueViolation = "23505"

// uniqueConstraint returns the violated constraint name, or "" when err is not a unique violation.
func uniqueConstraint(err error) string {
	var perr *pq.Error
	if errors.As(err, &perr) && perr.Code == uniqueViolation {
		if perr.Constraint == "" {
			return "unknown"
		}
		return perr.Constraint
	}
	return ""
}
