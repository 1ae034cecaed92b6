package domain

import (
	"context"
	"net/url"
	"time"
)

const avatarBaseURL = "https://ui-avatars.com/api/?name="

// DefaultAvatar returns the generated avatar URL for a display name.
func DefaultAvatar(name string) string {
	return avatarBaseURL + url.PathEscape(name)
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenClaims is what a verified session token carries.
type TokenClaims struct {
	UserID string
	Email  string
	Role   Role
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// AdminVerifier checks the super-admin secret. It never consults the user store.
type AdminVerifier interface {
	Verify(password string) bool
}

// ExternalIdentity is a caller identity asserted by an external provider (Google).
type ExternalIdentity struct {
	Subject   string `json:"subject"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// externalIDPrefix namespaces external subjects so they never collide with local ids.
const externalIDPrefix = "google:"

// ExternalUserID returns the local user id for an external identity subject.
func ExternalUserID(subject string) string {
	return externalIDPrefix + subject
}

// IdentityVerifier validates an external identity token.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*ExternalIdentity, error)
}

// OnboardingChoice is what a first-time external sign-in picks before a profile exists.
type OnboardingChoice string

const (
	OnboardAsAttendee  OnboardingChoice = "ATTENDEE"
	OnboardAsOrganizer OnboardingChoice = "ORGANIZER"
)

// SignUpInput is the attendee registration form.
type SignUpInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// OnboardingDetails are the profile fields supplied when completing external onboarding.
type OnboardingDetails struct {
	Name  string
	Phone string
}

// IdentitySignIn is the outcome of an external sign-in. Exactly one of Session
// and NeedsOnboarding is set.
type IdentitySignIn struct {
	Session         *Session          `json:"session,omitempty"`
	NeedsOnboarding bool              `json:"needs_onboarding"`
	Identity        *ExternalIdentity `json:"identity,omitempty"`
}

// OnboardingResult is the outcome of completing external onboarding. Organizers
// get a pending request instead of a session.
type OnboardingResult struct {
	User    *UserProfile      `json:"user"`
	Session *Session          `json:"session,omitempty"`
	Request *OrganizerRequest `json:"request,omitempty"`
}

// AuthService defines sign-up and the login paths.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*UserProfile, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	LoginInstitution(ctx context.Context, email, password string) (*Session, error)
	LoginSuperAdmin(ctx context.Context, password string) (*Session, error)
	SignInWithIdentity(ctx context.Context, token string) (*IdentitySignIn, error)
	CompleteIdentityOnboarding(ctx context.Context, token string, choice OnboardingChoice, details OnboardingDetails) (*OnboardingResult, error)
}
