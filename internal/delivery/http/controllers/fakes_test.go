package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// decodeEnvelope decodes the response envelope, unmarshalling data into dest when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	if dest != nil && raw.Error == nil {
		require.NoError(t, json.Unmarshal(raw.Data, dest))
	}
	return raw.Error
}

type fakeAuthService struct {
	signUpUser  *domain.UserProfile
	session     *domain.Session
	identity    *domain.IdentitySignIn
	onboarding  *domain.OnboardingResult
	err         error
	lastSignUp  domain.SignUpInput
	lastEmail   string
	lastChoice  domain.OnboardingChoice
	lastDetails domain.OnboardingDetails
}

func (f *fakeAuthService) SignUp(_ context.Context, in domain.SignUpInput) (*domain.UserProfile, error) {
	f.lastSignUp = in
	return f.signUpUser, f.err
}

func (f *fakeAuthService) Login(_ context.Context, email, _ string) (*domain.Session, error) {
	f.lastEmail = email
	return f.session, f.err
}

func (f *fakeAuthService) LoginInstitution(_ context.Context, email, _ string) (*domain.Session, error) {
	f.lastEmail = email
	return f.session, f.err
}

func (f *fakeAuthService) LoginSuperAdmin(context.Context, string) (*domain.Session, error) {
	return f.session, f.err
}

func (f *fakeAuthService) SignInWithIdentity(context.Context, string) (*domain.IdentitySignIn, error) {
	return f.identity, f.err
}

func (f *fakeAuthService) CompleteIdentityOnboarding(_ context.Context, _ string, choice domain.OnboardingChoice, details domain.OnboardingDetails) (*domain.OnboardingResult, error) {
	f.lastChoice = choice
	f.lastDetails = details
	return f.onboarding, f.err
}

type fakeOnboardingService struct {
	request   *domain.OrganizerRequest
	requests  []*domain.OrganizerRequest
	outcome   *domain.DecisionOutcome
	err       error
	decidedID string
	decision  string
}

func (f *fakeOnboardingService) SubmitOrganizerRequest(context.Context, domain.SubmitOrganizerInput) (*domain.OrganizerRequest, error) {
	return f.request, f.err
}

func (f *fakeOnboardingService) ListRequests(context.Context) ([]*domain.OrganizerRequest, error) {
	return f.requests, f.err
}

func (f *fakeOnboardingService) Approve(_ context.Context, id string) (*domain.DecisionOutcome, error) {
	f.decidedID, f.decision = id, "approve"
	return f.outcome, f.err
}

func (f *fakeOnboardingService) Reject(_ context.Context, id string) (*domain.DecisionOutcome, error) {
	f.decidedID, f.decision = id, "reject"
	return f.outcome, f.err
}

type fakeAdminService struct {
	users   []*domain.UserProfile
	toggled *domain.UserProfile
	err     error
}

func (f *fakeAdminService) ListUsers(context.Context) ([]*domain.UserProfile, error) {
	return f.users, f.err
}

func (f *fakeAdminService) ToggleBlock(context.Context, string) (*domain.UserProfile, error) {
	return f.toggled, f.err
}

type fakeUserService struct {
	user       *domain.UserProfile
	err        error
	lastID     string
	lastUpdate domain.ProfileUpdate
}

func (f *fakeUserService) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	f.lastID = id
	return f.user, f.err
}

func (f *fakeUserService) UpdateProfile(_ context.Context, id string, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	f.lastID = id
	f.lastUpdate = update
	return f.user, f.err
}

type fakeCatalogService struct {
	events      []*domain.Event
	event       *domain.Event
	url         string
	err         error
	lastOwner   string
	lastInput   domain.EventInput
	lastUpload  domain.ImageUpload
	uploadBytes []byte
}

func (f *fakeCatalogService) CreateEvent(_ context.Context, organizerID string, in domain.EventInput) (*domain.Event, error) {
	f.lastOwner = organizerID
	f.lastInput = in
	return f.event, f.err
}

func (f *fakeCatalogService) ListEvents(context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeCatalogService) ListByOrganizer(_ context.Context, organizerID string) ([]*domain.Event, error) {
	f.lastOwner = organizerID
	return f.events, f.err
}

func (f *fakeCatalogService) GetEvent(context.Context, string) (*domain.Event, error) {
	return f.event, f.err
}

func (f *fakeCatalogService) UploadEventImage(_ context.Context, organizerID string, img domain.ImageUpload) (string, error) {
	f.lastOwner = organizerID
	f.lastUpload = img
	if img.Body != nil {
		f.uploadBytes, _ = io.ReadAll(img.Body)
	}
	return f.url, f.err
}

type fakeTicketService struct {
	result   *domain.TicketValidation
	png      []byte
	err      error
	lastCode string
	lastSize int
}

func (f *fakeTicketService) Validate(_ context.Context, code string) (*domain.TicketValidation, error) {
	f.lastCode = code
	return f.result, f.err
}

func (f *fakeTicketService) RenderQR(code string, size int) ([]byte, error) {
	f.lastCode, f.lastSize = code, size
	return f.png, f.err
}
