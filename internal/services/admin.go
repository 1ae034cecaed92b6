package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campusevents/internal/domain"
)

type adminService struct {
	store          domain.AccountStore
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewAdminService creates the super-admin account management service.
func NewAdminService(store domain.AccountStore, logger *slog.Logger, timeout time.Duration) domain.AdminService {
	return &adminService{store: store, logger: logger, contextTimeout: timeout}
}

func (s *adminService) ListUsers(ctx context.Context) ([]*domain.UserProfile, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	out := make([]*domain.UserProfile, 0, len(users))
	for _, u := range users {
		if u.Role != domain.RoleSuperAdmin {
			out = append(out, u)
		}
	}
	return out, nil
}

// ToggleBlock flips the blocked flag. The super-admin cannot be blocked.
func (s *adminService) ToggleBlock(ctx context.Context, userID string) (*domain.UserProfile, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.Role.CanAdminister() {
		return nil, domain.ErrForbidden
	}
	user.Blocked = !user.Blocked
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	s.logger.InfoContext(ctx, "user block toggled", "user_id", user.ID, "blocked", user.Blocked)
	return user, nil
}
