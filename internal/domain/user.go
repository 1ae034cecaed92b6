package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserProfile represents an account: attendee, organizer or super-admin.
// swagger:model UserProfile
type UserProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Blocked   bool      `json:"blocked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserProfile returns a profile with the given fields. INSTITUTION profiles start blocked.
func NewUserProfile(id, name, email, phone string, role Role, now time.Time) *UserProfile {
	return &UserProfile{
		ID:        id,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Role:      role,
		Avatar:    DefaultAvatar(name),
		Blocked:   role == RoleInstitution,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ProfileUpdate holds the user-editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Name   *string
	Phone  *string
	Avatar *string
	Bio    *string
}

// Credential is the password identity of an account, stored apart from the profile.
type Credential struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Salt         string `json:"salt"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	User      *UserProfile `json:"user"`
}

// UserRepository defines the interface for user profile storage.
type UserRepository interface {
	Create(ctx context.Context, user *UserProfile) error
	GetByID(ctx context.Context, id string) (*UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*UserProfile, error)
	// GetByRole returns the first profile with the given role, or ErrUserNotFound.
	GetByRole(ctx context.Context, role Role) (*UserProfile, error)
	List(ctx context.Context) ([]*UserProfile, error)
	Update(ctx context.Context, user *UserProfile) error
}

// CredentialRepository defines storage for password identities.
type CredentialRepository interface {
	Create(ctx context.Context, cred *Credential) error
	GetByEmail(ctx context.Context, email string) (*Credential, error)
}

// UserService defines profile reads and edits.
type UserService interface {
	GetByID(ctx context.Context, id string) (*UserProfile, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*UserProfile, error)
}

// AdminService defines super-admin account management.
type AdminService interface {
	// ListUsers returns every profile except super-admins.
	ListUsers(ctx context.Context) ([]*UserProfile, error)
	// ToggleBlock flips the blocked flag. Returns nil, nil when the user does not exist.
	ToggleBlock(ctx context.Context, userID string) (*UserProfile, error)
}
