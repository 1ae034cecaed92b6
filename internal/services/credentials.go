package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"campusevents/internal/domain"
)

// registerAccount writes the password identity and then the profile. If the
// profile write fails the credential is left behind; the caller gets the error
// and the orphan is logged.
func registerAccount(ctx context.Context, store domain.AccountStore, hasher domain.PasswordHasher, logger *slog.Logger, profile *domain.UserProfile, password string) error {
	if _, err := store.Users().GetByEmail(ctx, profile.Email); err == nil {
		return domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	salt, err := hasher.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := hasher.Hash(salt, password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	cred := &domain.Credential{UserID: profile.ID, Email: profile.Email, PasswordHash: hash, Salt: salt}
	if err := store.Credentials().Create(ctx, cred); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return err
		}
		return fmt.Errorf("failed to create credential: %w", err)
	}

	if err := store.Users().Create(ctx, profile); err != nil {
		logger.ErrorContext(ctx, "profile write failed after credential was stored",
			"user_id", profile.ID, "email", profile.Email, "err", err)
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return err
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// checkCredential verifies password for email. Every failure is ErrInvalidCredentials
// except storage errors.
func checkCredential(ctx context.Context, store domain.AccountStore, hasher domain.PasswordHasher, email, password string) error {
	cred, err := store.Credentials().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("failed to get credential: %w", err)
	}
	if err := hasher.Compare(cred.PasswordHash, cred.Salt, password); err != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}
