package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"campusevents/internal/domain"
)

const minPasswordLen = 8

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return "", fmt.Errorf("invalid email format: %w", domain.ErrInvalidInput)
	}
	return email, nil
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}
	return name, nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, domain.ErrInvalidInput)
	}
	return nil
}

// withTimeout bounds ctx by d. A non-positive d leaves ctx unbounded.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// storeNow is the clock for persisted timestamps: UTC, no monotonic reading,
// microsecond precision so values survive JSON and Postgres unchanged.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
