package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

type userService struct {
	store          domain.AccountStore
	contextTimeout time.Duration
}

// NewUserService creates a UserService over the account store.
func NewUserService(store domain.AccountStore, timeout time.Duration) domain.UserService {
	return &userService{store: store, contextTimeout: timeout}
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of update. Role and blocked state
// are not user-editable.
func (s *userService) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if update.Name != nil {
		name, err := requireName(*update.Name)
		if err != nil {
			return nil, err
		}
		user.Name = name
	}
	if update.Phone != nil {
		user.Phone = strings.TrimSpace(*update.Phone)
	}
	if update.Avatar != nil {
		user.Avatar = strings.TrimSpace(*update.Avatar)
		if user.Avatar == "" {
			user.Avatar = domain.DefaultAvatar(user.Name)
		}
	}
	if update.Bio != nil {
		user.Bio = strings.TrimSpace(*update.Bio)
	}
	if err := s.store.Users().Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
