package kvstore

import (
	"context"
	"strings"

	"campusevents/internal/domain"
)

type userRepository struct {
	s *Store
}

func (r *userRepository) load(ctx context.Context) []*domain.UserProfile {
	return r.s.users.ReadOrSeed(ctx, seedUsers())
}

func (r *userRepository) Create(ctx context.Context, user *domain.UserProfile) error {
	if user.ID == "" {
		return domain.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	users := r.load(ctx)
	for _, u := range users {
		if u.ID == user.ID {
			return domain.ErrInvalidInput
		}
		if sameEmail(u.Email, user.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.s.now()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
	cp := *user
	r.s.users.Write(ctx, append(users, &cp))
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	return r.find(ctx, func(u *domain.UserProfile) bool { return u.ID == id })
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	if email == "" {
		return nil, domain.ErrUserNotFound
	}
	return r.find(ctx, func(u *domain.UserProfile) bool { return sameEmail(u.Email, email) })
}

func (r *userRepository) GetByRole(ctx context.Context, role domain.Role) (*domain.UserProfile, error) {
	return r.find(ctx, func(u *domain.UserProfile) bool { return u.Role == role })
}

func (r *userRepository) find(ctx context.Context, match func(*domain.UserProfile) bool) (*domain.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.load(ctx) {
		if match(u) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepository) List(ctx context.Context) ([]*domain.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.load(ctx), nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	users := r.load(ctx)
	idx := -1
	for i, u := range users {
		if u.ID == user.ID {
			idx = i
			continue
		}
		if sameEmail(u.Email, user.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	if idx < 0 {
		return domain.ErrUserNotFound
	}
	user.UpdatedAt = r.s.now()
	cp := *user
	users[idx] = &cp
	r.s.users.Write(ctx, users)
	return nil
}

// sameEmail compares addresses case-insensitively. Empty never matches.
func sameEmail(a, b string) bool {
	return a != "" && b != "" && strings.EqualFold(a, b)
}
