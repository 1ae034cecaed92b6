package kvstore

import (
	"context"

	"campusevents/internal/domain"
)

type credentialRepository struct {
	s *Store
}

func (r *credentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	creds := r.s.creds.ReadOrSeed(ctx, nil)
	for _, c := range creds {
		if sameEmail(c.Email, cred.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	cp := *cred
	r.s.creds.Write(ctx, append(creds, &cp))
	return nil
}

func (r *credentialRepository) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.creds.ReadOrSeed(ctx, nil) {
		if sameEmail(c.Email, email) {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}
