package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"campusevents/internal/domain"
)

const (
	tokenType           = "Bearer"
	superAdminID        = "super_admin"
	superAdminName      = "Platform Admin"
	superAdminAvatarKey = "Admin"
)

type authService struct {
	store          domain.AccountStore
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	adminVerifier  domain.AdminVerifier
	identities     domain.IdentityVerifier
	emailService   domain.EmailService
	logger         *slog.Logger
	tokenExpiry    time.Duration
	contextTimeout time.Duration
	now            func() time.Time
}

// NewAuthService creates an AuthService. emailService may be nil.
func NewAuthService(
	store domain.AccountStore,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	adminVerifier domain.AdminVerifier,
	identities domain.IdentityVerifier,
	emailService domain.EmailService,
	logger *slog.Logger,
	tokenExpiry time.Duration,
	timeout time.Duration,
) domain.AuthService {
	return &authService{
		store:          store,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		adminVerifier:  adminVerifier,
		identities:     identities,
		emailService:   emailService,
		logger:         logger,
		tokenExpiry:    tokenExpiry,
		contextTimeout: timeout,
		now:            storeNow,
	}
}

func (s *authService) SignUp(ctx context.Context, in domain.SignUpInput) (*domain.UserProfile, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	name, err := requireName(in.Name)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}

	user := domain.NewUserProfile(uuid.NewString(), name, email, strings.TrimSpace(in.Phone), domain.RoleUser, s.now())
	if err := registerAccount(ctx, s.store, s.hasher, s.logger, user, in.Password); err != nil {
		return nil, err
	}
	s.sendWelcome(ctx, user)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.lookupByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.Blocked {
		return nil, domain.ErrAccountBlocked
	}
	if err := checkCredential(ctx, s.store, s.hasher, user.Email, password); err != nil {
		return nil, err
	}
	return s.newSession(user)
}

func (s *authService) LoginInstitution(ctx context.Context, email, password string) (*domain.Session, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.lookupByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleInstitution {
		return nil, domain.ErrNotInstitution
	}
	if user.Blocked {
		return nil, domain.ErrAccountBlocked
	}
	if err := checkCredential(ctx, s.store, s.hasher, user.Email, password); err != nil {
		return nil, err
	}
	return s.newSession(user)
}

// LoginSuperAdmin checks password against the configured admin secret only.
// The profile is read (or created) after the secret matches.
func (s *authService) LoginSuperAdmin(ctx context.Context, password string) (*domain.Session, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if password == "" || !s.adminVerifier.Verify(password) {
		return nil, domain.ErrInvalidCredentials
	}

	admin, err := s.store.Users().GetByRole(ctx, domain.RoleSuperAdmin)
	if errors.Is(err, domain.ErrUserNotFound) {
		admin = domain.NewUserProfile(superAdminID, superAdminName, "", "", domain.RoleSuperAdmin, s.now())
		admin.Avatar = domain.DefaultAvatar(superAdminAvatarKey)
		if err = s.store.Users().Create(ctx, admin); err != nil {
			return nil, fmt.Errorf("failed to create super admin: %w", err)
		}
		s.logger.InfoContext(ctx, "created super admin profile", "user_id", admin.ID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get super admin: %w", err)
	}
	return s.newSession(admin)
}

func (s *authService) SignInWithIdentity(ctx context.Context, token string) (*domain.IdentitySignIn, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	ident, err := s.identities.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := s.store.Users().GetByID(ctx, domain.ExternalUserID(ident.Subject))
	if errors.Is(err, domain.ErrUserNotFound) {
		return &domain.IdentitySignIn{NeedsOnboarding: true, Identity: ident}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.Blocked {
		return nil, domain.ErrAccountBlocked
	}
	sess, err := s.newSession(user)
	if err != nil {
		return nil, err
	}
	return &domain.IdentitySignIn{Session: sess, Identity: ident}, nil
}

func (s *authService) CompleteIdentityOnboarding(ctx context.Context, token string, choice domain.OnboardingChoice, details domain.OnboardingDetails) (*domain.OnboardingResult, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	var role domain.Role
	switch choice {
	case domain.OnboardAsAttendee:
		role = domain.RoleUser
	case domain.OnboardAsOrganizer:
		role = domain.RoleInstitution
	default:
		return nil, fmt.Errorf("unknown onboarding choice %q: %w", choice, domain.ErrInvalidInput)
	}

	ident, err := s.identities.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Users().GetByID(ctx, domain.ExternalUserID(ident.Subject)); err == nil {
		return nil, fmt.Errorf("account already onboarded: %w", domain.ErrDuplicateEmail)
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	nameInput := details.Name
	if strings.TrimSpace(nameInput) == "" {
		nameInput = ident.Name
	}
	name, err := requireName(nameInput)
	if err != nil {
		return nil, err
	}

	user := domain.NewUserProfile(domain.ExternalUserID(ident.Subject), name, strings.ToLower(ident.Email), strings.TrimSpace(details.Phone), role, s.now())
	if ident.AvatarURL != "" {
		user.Avatar = ident.AvatarURL
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if role == domain.RoleInstitution {
		req, err := fileOrganizerRequest(ctx, s.store, user, s.now())
		if err != nil {
			return nil, err
		}
		notifyRequestReceived(ctx, s.emailService, s.logger, req)
		return &domain.OnboardingResult{User: user, Request: req}, nil
	}

	sess, err := s.newSession(user)
	if err != nil {
		return nil, err
	}
	s.sendWelcome(ctx, user)
	return &domain.OnboardingResult{User: user, Session: sess}, nil
}

func (s *authService) lookupByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *authService) newSession(user *domain.UserProfile) (*domain.Session, error) {
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, user.Role, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &domain.Session{Token: token, TokenType: tokenType, User: user}, nil
}

func (s *authService) sendWelcome(ctx context.Context, user *domain.UserProfile) {
	if s.emailService == nil || user.Email == "" {
		return
	}
	data := &domain.WelcomeEmailData{Email: user.Email, Name: user.Name}
	if err := s.emailService.SendWelcome(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "welcome email failed", "user_id", user.ID, "err", err)
	}
}
