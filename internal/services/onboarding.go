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

const recoveredUserPrefix = "org_"

type onboardingService struct {
	store          domain.AccountStore
	hasher         domain.PasswordHasher
	emailService   domain.EmailService
	logger         *slog.Logger
	legacyRecovery bool
	contextTimeout time.Duration
	now            func() time.Time
}

// NewOnboardingService creates the organizer approval workflow. legacyRecovery
// enables approving requests that carry no linked user; see Approve.
func NewOnboardingService(
	store domain.AccountStore,
	hasher domain.PasswordHasher,
	emailService domain.EmailService,
	logger *slog.Logger,
	legacyRecovery bool,
	timeout time.Duration,
) domain.OnboardingService {
	return &onboardingService{
		store:          store,
		hasher:         hasher,
		emailService:   emailService,
		logger:         logger,
		legacyRecovery: legacyRecovery,
		contextTimeout: timeout,
		now:            storeNow,
	}
}

// SubmitOrganizerRequest creates a blocked INSTITUTION account and a PENDING
// request linked to it.
func (s *onboardingService) SubmitOrganizerRequest(ctx context.Context, in domain.SubmitOrganizerInput) (*domain.OrganizerRequest, error) {
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

	now := s.now()
	user := domain.NewUserProfile(uuid.NewString(), name, email, strings.TrimSpace(in.Phone), domain.RoleInstitution, now)
	if err := registerAccount(ctx, s.store, s.hasher, s.logger, user, in.Password); err != nil {
		return nil, err
	}
	req, err := fileOrganizerRequest(ctx, s.store, user, now)
	if err != nil {
		return nil, err
	}
	notifyRequestReceived(ctx, s.emailService, s.logger, req)
	return req, nil
}

func (s *onboardingService) ListRequests(ctx context.Context) ([]*domain.OrganizerRequest, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	reqs, err := s.store.OrganizerRequests().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizer requests: %w", err)
	}
	return reqs, nil
}

// Approve moves a PENDING request to APPROVED and unblocks its account.
//
// The account is unblocked before the status changes, so a failure in between
// leaves the request PENDING and the approval can be retried.
//
// A request with no linked account (or whose account is gone) predates
// linking. With legacy recovery on, the account is reconstructed from the
// request as one new unblocked INSTITUTION profile. If the email already has
// an account, ErrLegacyRecoveryConflict is returned and nothing changes. With
// recovery off the request stays PENDING and ErrLegacyRecoveryDisabled is
// returned.
func (s *onboardingService) Approve(ctx context.Context, requestID string) (*domain.DecisionOutcome, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	req, ok, err := s.pending(ctx, requestID, domain.RequestApproved)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &domain.DecisionOutcome{Request: req}, nil
	}

	out := &domain.DecisionOutcome{Request: req}
	user, err := s.linkedUser(ctx, req)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if !s.legacyRecovery {
			return nil, domain.ErrLegacyRecoveryDisabled
		}
		if user, err = s.recoverAccount(ctx, req); err != nil {
			return nil, err
		}
		out.Recovered = true
		out.RecoveredUserID = user.ID
	} else if user.Blocked {
		user.Blocked = false
		if err := s.store.Users().Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to unblock user: %w", err)
		}
	}

	if err := s.store.OrganizerRequests().UpdateStatus(ctx, req.ID, domain.RequestApproved); err != nil {
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}
	req.Status = domain.RequestApproved
	out.Applied = true
	s.notifyDecision(ctx, req)
	return out, nil
}

// Reject moves a PENDING request to REJECTED. The linked account is left as is.
func (s *onboardingService) Reject(ctx context.Context, requestID string) (*domain.DecisionOutcome, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	req, ok, err := s.pending(ctx, requestID, domain.RequestRejected)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &domain.DecisionOutcome{Request: req}, nil
	}
	if err := s.store.OrganizerRequests().UpdateStatus(ctx, req.ID, domain.RequestRejected); err != nil {
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}
	req.Status = domain.RequestRejected
	s.notifyDecision(ctx, req)
	return &domain.DecisionOutcome{Request: req, Applied: true}, nil
}

// pending loads the request and reports whether it may move to next. A missing
// request is not an error.
func (s *onboardingService) pending(ctx context.Context, id string, next domain.OrganizerRequestStatus) (*domain.OrganizerRequest, bool, error) {
	req, err := s.store.OrganizerRequests().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get organizer request: %w", err)
	}
	if !req.Status.CanTransitionTo(next) {
		s.logger.InfoContext(ctx, "organizer request already decided",
			"request_id", req.ID, "status", req.Status, "attempted", next)
		return req, false, nil
	}
	return req, true, nil
}

// linkedUser returns the request's account, or nil when it has none.
func (s *onboardingService) linkedUser(ctx context.Context, req *domain.OrganizerRequest) (*domain.UserProfile, error) {
	if req.UserID == "" {
		return nil, nil
	}
	user, err := s.store.Users().GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.WarnContext(ctx, "organizer request links a missing user", "request_id", req.ID, "user_id", req.UserID)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get linked user: %w", err)
	}
	return user, nil
}

func (s *onboardingService) recoverAccount(ctx context.Context, req *domain.OrganizerRequest) (*domain.UserProfile, error) {
	existing, err := s.store.Users().GetByEmail(ctx, req.Email)
	if err == nil {
		s.logger.WarnContext(ctx, "legacy approval recovery blocked by existing account",
			"request_id", req.ID, "user_id", existing.ID, "role", existing.Role)
		return nil, fmt.Errorf("request email belongs to %s account %s: %w", existing.Role, existing.ID, domain.ErrLegacyRecoveryConflict)
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user := domain.NewUserProfile(recoveredUserPrefix+uuid.NewString(), req.Name, req.Email, req.Phone, domain.RoleInstitution, s.now())
	user.Blocked = false
	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: %w", domain.ErrLegacyRecoveryConflict, err)
		}
		return nil, fmt.Errorf("failed to create recovered user: %w", err)
	}
	s.logger.WarnContext(ctx, "legacy approval recovery created account",
		"request_id", req.ID, "user_id", user.ID)
	return user, nil
}

func (s *onboardingService) notifyDecision(ctx context.Context, req *domain.OrganizerRequest) {
	if s.emailService == nil {
		return
	}
	data := &domain.OrganizerRequestEmailData{Email: req.Email, OrganizationName: req.Name, RequestID: req.ID, Status: req.Status}
	if err := s.emailService.SendOrganizerDecision(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "organizer decision email failed", "request_id", req.ID, "err", err)
	}
}

// fileOrganizerRequest stores a PENDING request linked to user.
func fileOrganizerRequest(ctx context.Context, store domain.AccountStore, user *domain.UserProfile, now time.Time) (*domain.OrganizerRequest, error) {
	req := &domain.OrganizerRequest{
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Status:    domain.RequestPending,
		CreatedAt: now,
		UserID:    user.ID,
	}
	if err := store.OrganizerRequests().Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create organizer request: %w", err)
	}
	return req, nil
}

func notifyRequestReceived(ctx context.Context, emailService domain.EmailService, logger *slog.Logger, req *domain.OrganizerRequest) {
	if emailService == nil || req.Email == "" {
		return
	}
	data := &domain.OrganizerRequestEmailData{Email: req.Email, OrganizationName: req.Name, RequestID: req.ID, Status: req.Status}
	if err := emailService.SendOrganizerRequestReceived(ctx, data); err != nil {
		logger.WarnContext(ctx, "organizer request email failed", "request_id", req.ID, "err", err)
	}
}
