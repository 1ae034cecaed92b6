package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrLegacyRecoveryDisabled is returned when approving an unlinked request
	// while the legacy recovery path is switched off.
	ErrLegacyRecoveryDisabled = errors.New("legacy approval recovery disabled")
	// ErrLegacyRecoveryConflict is returned when an unlinked request's email
	// already belongs to an account. No account is changed.
	ErrLegacyRecoveryConflict = errors.New("legacy approval recovery conflicts with an existing account")
)

// OrganizerRequestStatus is the state of an organizer onboarding request.
type OrganizerRequestStatus string

const (
	RequestPending  OrganizerRequestStatus = "PENDING"
	RequestApproved OrganizerRequestStatus = "APPROVED"
	RequestRejected OrganizerRequestStatus = "REJECTED"
)

// CanTransitionTo reports whether s may move to next. Only PENDING moves, and only once.
func (s OrganizerRequestStatus) CanTransitionTo(next OrganizerRequestStatus) bool {
	return s == RequestPending && (next == RequestApproved || next == RequestRejected)
}

// OrganizerRequest is a pending-approval envelope for an organizer account.
// swagger:model OrganizerRequest
type OrganizerRequest struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	Phone     string                 `json:"phone"`
	Status    OrganizerRequestStatus `json:"status"`
	CreatedAt time.Time              `json:"created_at"`
	// UserID links the request to the blocked INSTITUTION profile. Empty on legacy data.
	UserID string `json:"user_id,omitempty"`
}

// SubmitOrganizerInput is the organizer registration form.
type SubmitOrganizerInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// DecisionOutcome reports what approve/reject actually did.
type DecisionOutcome struct {
	Request *OrganizerRequest `json:"request,omitempty"`
	// Applied is false when the request was missing or already decided.
	Applied bool `json:"applied"`
	// Recovered is true when approval took the legacy unlinked-request path.
	Recovered       bool   `json:"recovered"`
	RecoveredUserID string `json:"recovered_user_id,omitempty"`
}

// OrganizerRequestRepository defines storage for organizer requests.
type OrganizerRequestRepository interface {
	Create(ctx context.Context, req *OrganizerRequest) error
	GetByID(ctx context.Context, id string) (*OrganizerRequest, error)
	List(ctx context.Context) ([]*OrganizerRequest, error)
	UpdateStatus(ctx context.Context, id string, status OrganizerRequestStatus) error
}

// OnboardingService defines the organizer approval workflow.
type OnboardingService interface {
	SubmitOrganizerRequest(ctx context.Context, in SubmitOrganizerInput) (*OrganizerRequest, error)
	ListRequests(ctx context.Context) ([]*OrganizerRequest, error)
	Approve(ctx context.Context, requestID string) (*DecisionOutcome, error)
	Reject(ctx context.Context, requestID string) (*DecisionOutcome, error)
}
