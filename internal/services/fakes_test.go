package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"campusevents/internal/domain"
	"campusevents/internal/repository/kvstore"
)

var errStorage = errors.New("storage unavailable")

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newMemoryStore() domain.AccountStore {
	return kvstore.NewStore(kvstore.NewMemoryBackend(), nil)
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	saltErr error
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) {
	if f.saltErr != nil {
		return "", f.saltErr
	}
	return "salt", nil
}
func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + salt + "-" + password, nil
}
func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+salt+"-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(userID, email string, role domain.Role, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID + "-" + string(role), nil
}

// fakeAdminVerifier accepts exactly one password.
type fakeAdminVerifier struct {
	password string
}

func (f fakeAdminVerifier) Verify(password string) bool { return password == f.password }

// fakeIdentityVerifier maps tokens to identities.
type fakeIdentityVerifier struct {
	identities map[string]*domain.ExternalIdentity
}

func (f *fakeIdentityVerifier) Verify(_ context.Context, token string) (*domain.ExternalIdentity, error) {
	if ident, ok := f.identities[token]; ok {
		cp := *ident
		return &cp, nil
	}
	return nil, fmt.Errorf("unknown token: %w", domain.ErrInvalidCredentials)
}

// fakeEmailService records sent emails.
type fakeEmailService struct {
	mu        sync.Mutex
	welcome   []*domain.WelcomeEmailData
	received  []*domain.OrganizerRequestEmailData
	decisions []*domain.OrganizerRequestEmailData
	err       error
}

func (f *fakeEmailService) SendWelcome(_ context.Context, data *domain.WelcomeEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcome = append(f.welcome, data)
	return f.err
}

func (f *fakeEmailService) SendOrganizerRequestReceived(_ context.Context, data *domain.OrganizerRequestEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, data)
	return f.err
}

func (f *fakeEmailService) SendOrganizerDecision(_ context.Context, data *domain.OrganizerRequestEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decisions = append(f.decisions, data)
	return f.err
}

// fakeMediaStore records uploads.
type fakeMediaStore struct {
	key         string
	contentType string
	body        string
	err         error
}

func (f *fakeMediaStore) Upload(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.key, f.contentType, f.body = key, contentType, string(b)
	return "https://cdn.test/" + key, nil
}

// fakeQRRenderer returns the content and size as bytes.
type fakeQRRenderer struct {
	size int
	err  error
}

func (f *fakeQRRenderer) PNG(content string, size int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.size = size
	return []byte("png:" + content), nil
}

// faultyStore wraps an AccountStore and fails selected repositories.
type faultyStore struct {
	domain.AccountStore
	usersErr    error
	credsErr    error
	eventsErr   error
	requestsErr error
	// failUserCreate fails only UserRepository.Create.
	failUserCreate bool
	// failStatusUpdate fails only OrganizerRequestRepository.UpdateStatus.
	failStatusUpdate bool
}

func (s *faultyStore) Users() domain.UserRepository {
	return &faultyUsers{UserRepository: s.AccountStore.Users(), err: s.usersErr, failCreate: s.failUserCreate}
}
func (s *faultyStore) Credentials() domain.CredentialRepository {
	return &faultyCreds{CredentialRepository: s.AccountStore.Credentials(), err: s.credsErr}
}
func (s *faultyStore) Events() domain.EventRepository {
	return &faultyEvents{EventRepository: s.AccountStore.Events(), err: s.eventsErr}
}
func (s *faultyStore) OrganizerRequests() domain.OrganizerRequestRepository {
	return &faultyRequests{OrganizerRequestRepository: s.AccountStore.OrganizerRequests(), err: s.requestsErr, failUpdate: s.failStatusUpdate}
}

type faultyUsers struct {
	domain.UserRepository
	err        error
	failCreate bool
}

func (r *faultyUsers) Create(ctx context.Context, u *domain.UserProfile) error {
	if r.err != nil || r.failCreate {
		return errStorage
	}
	return r.UserRepository.Create(ctx, u)
}
func (r *faultyUsers) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.UserRepository.GetByID(ctx, id)
}
func (r *faultyUsers) GetByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.UserRepository.GetByEmail(ctx, email)
}
func (r *faultyUsers) GetByRole(ctx context.Context, role domain.Role) (*domain.UserProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.UserRepository.GetByRole(ctx, role)
}
func (r *faultyUsers) List(ctx context.Context) ([]*domain.UserProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.UserRepository.List(ctx)
}

type faultyCreds struct {
	domain.CredentialRepository
	err error
}

func (r *faultyCreds) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.CredentialRepository.GetByEmail(ctx, email)
}

type faultyEvents struct {
	domain.EventRepository
	err error
}

func (r *faultyEvents) List(ctx context.Context) ([]*domain.Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.EventRepository.List(ctx)
}
func (r *faultyEvents) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.EventRepository.GetByID(ctx, id)
}

type faultyRequests struct {
	domain.OrganizerRequestRepository
	err        error
	failUpdate bool
}

func (r *faultyRequests) GetByID(ctx context.Context, id string) (*domain.OrganizerRequest, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.OrganizerRequestRepository.GetByID(ctx, id)
}
func (r *faultyRequests) UpdateStatus(ctx context.Context, id string, status domain.OrganizerRequestStatus) error {
	if r.err != nil || r.failUpdate {
		return errStorage
	}
	return r.OrganizerRequestRepository.UpdateStatus(ctx, id, status)
}

func strPtr(s string) *string { return &s }

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
