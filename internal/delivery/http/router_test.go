package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"campusevents/internal/adapters/auth"
	"campusevents/internal/adapters/email"
	"campusevents/internal/adapters/qrcode"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/domain"
	"campusevents/internal/repository/kvstore"
	"campusevents/internal/services"
)

const adminSecret = "campus-admin-secret"

type testServer struct {
	t   *testing.T
	srv *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kvstore.NewStore(kvstore.NewMemoryBackend(), logger)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	jwt := auth.NewJWT("router-test-secret")
	adminHash, err := auth.HashAdminPassword(adminSecret, bcrypt.MinCost)
	require.NoError(t, err)
	mailer, err := email.NewMailer(email.MailerConfig{Provider: "noop"}, logger)
	require.NoError(t, err)
	renderer, err := email.NewTemplateRenderer()
	require.NoError(t, err)
	emails := services.NewEmailService(mailer, renderer, logger)
	timeout := 5 * time.Second

	authSvc := services.NewAuthService(store, hasher, jwt, auth.NewAdminVerifier(adminHash),
		auth.NewIdentityVerifier("", ""), emails, logger, time.Hour, timeout)
	onboarding := services.NewOnboardingService(store, hasher, emails, logger, true, timeout)

	mux := NewRouter(Controllers{
		Auth:      controllers.NewAuthController(logger, authSvc),
		Organizer: controllers.NewOrganizerController(logger, onboarding),
		Admin:     controllers.NewAdminController(logger, services.NewAdminService(store, logger, timeout)),
		User:      controllers.NewUserController(logger, services.NewUserService(store, timeout)),
		Event:     controllers.NewEventController(logger, services.NewCatalogService(store, nil, timeout)),
		Ticket:    controllers.NewTicketController(logger, services.NewTicketService(qrcode.NewRenderer())),
		Health:    controllers.NewHealthController(logger, "memory", nil),
	}, jwt, logger)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &testServer{t: t, srv: srv}
}

// do sends a request and decodes the envelope data into dest when the call succeeds.
func (s *testServer) do(method, path, token string, body any, dest any) (int, string) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, reader)
	require.NoError(s.t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.srv.Client().Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	if resp.Header.Get("Content-Type") != "application/json" {
		return resp.StatusCode, ""
	}
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(s.t, json.NewDecoder(resp.Body).Decode(&envelope))
	if envelope.Error != nil {
		return resp.StatusCode, envelope.Error.Code
	}
	if dest != nil {
		require.NoError(s.t, json.Unmarshal(envelope.Data, dest))
	}
	return resp.StatusCode, ""
}

func (s *testServer) login(path string, body any) string {
	s.t.Helper()
	var session domain.Session
	status, code := s.do(http.MethodPost, path, "", body, &session)
	require.Equal(s.t, http.StatusOK, status, "login %s failed: %s", path, code)
	return session.Token
}

func TestRouter_OrganizerLifecycle(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(http.MethodGet, "/healthz", "", nil, nil)
	require.Equal(t, http.StatusOK, status)

	var page struct {
		Items      []domain.Event `json:"items"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	status, _ = s.do(http.MethodGet, "/events", "", nil, &page)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 3, page.Pagination.Total)
	assert.Equal(t, "evt_01", page.Items[0].ID)

	newEvent := map[string]string{"title": "Robotics Expo", "date": "2024-06-01"}
	status, code := s.do(http.MethodPost, "/events", "", newEvent, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized", code)

	// Attendees cannot publish.
	status, _ = s.do(http.MethodPost, "/auth/signup", "", map[string]string{"name": "Ana", "email": "ana@campus.test", "password": "password1"}, nil)
	require.Equal(t, http.StatusCreated, status)
	userToken := s.login("/auth/login", map[string]string{"email": "ana@campus.test", "password": "password1"})
	status, code = s.do(http.MethodPost, "/events", userToken, newEvent, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", code)

	// Organizer registers and is blocked until approved.
	var req domain.OrganizerRequest
	status, _ = s.do(http.MethodPost, "/organizer-requests", "", map[string]string{"name": "Robotics Club", "email": "bots@campus.test", "password": "password1"}, &req)
	require.Equal(t, http.StatusCreated, status)
	orgLogin := map[string]string{"email": "bots@campus.test", "password": "password1"}
	status, code = s.do(http.MethodPost, "/auth/institution/login", "", orgLogin, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "account_blocked", code)

	// Admin approves.
	status, _ = s.do(http.MethodPost, "/auth/admin/login", "", map[string]string{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	adminToken := s.login("/auth/admin/login", map[string]string{"password": adminSecret})

	status, _ = s.do(http.MethodGet, "/admin/organizer-requests", userToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)
	var requests []domain.OrganizerRequest
	status, _ = s.do(http.MethodGet, "/admin/organizer-requests", adminToken, nil, &requests)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, requests, 1)

	var outcome domain.DecisionOutcome
	status, _ = s.do(http.MethodPost, "/admin/organizer-requests/"+req.ID+"/approve", adminToken, nil, &outcome)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, outcome.Applied)
	status, _ = s.do(http.MethodPost, "/admin/organizer-requests/"+req.ID+"/reject", adminToken, nil, &outcome)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, outcome.Applied)

	// Approved organizer publishes.
	orgToken := s.login("/auth/institution/login", orgLogin)
	var created domain.Event
	status, _ = s.do(http.MethodPost, "/events", orgToken, newEvent, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, created.ID)

	var mine []domain.Event
	status, _ = s.do(http.MethodGet, "/events/mine", orgToken, nil, &mine)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, mine, 1)

	var got domain.Event
	status, _ = s.do(http.MethodGet, "/events/"+created.ID, "", nil, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Robotics Expo", got.Title)
	status, _ = s.do(http.MethodGet, "/events/does-not-exist", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, code = s.do(http.MethodPost, "/events/images", orgToken, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "bad_request", code)

	var scan domain.TicketValidation
	status, _ = s.do(http.MethodPost, "/tickets/validate", orgToken, map[string]string{"code": "TICKET-42"}, &scan)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, scan.IsValid)
}

func TestRouter_AdminBlocksUser(t *testing.T) {
	s := newTestServer(t)

	var user domain.UserProfile
	status, _ := s.do(http.MethodPost, "/auth/signup", "", map[string]string{"name": "Ben", "email": "ben@campus.test", "password": "password1"}, &user)
	require.Equal(t, http.StatusCreated, status)
	creds := map[string]string{"email": "ben@campus.test", "password": "password1"}
	userToken := s.login("/auth/login", creds)
	adminToken := s.login("/auth/admin/login", map[string]string{"password": adminSecret})

	var me domain.UserProfile
	status, _ = s.do(http.MethodPatch, "/users/me", userToken, map[string]string{"bio": "Robotics"}, &me)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Robotics", me.Bio)

	var toggled domain.UserProfile
	status, _ = s.do(http.MethodPost, "/admin/users/"+user.ID+"/toggle-block", adminToken, nil, &toggled)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, toggled.Blocked)

	status, code := s.do(http.MethodPost, "/auth/login", "", creds, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "account_blocked", code)

	status, _ = s.do(http.MethodPost, "/admin/users/super_admin/toggle-block", adminToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = s.do(http.MethodPost, "/admin/users/ghost/toggle-block", adminToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_TicketQR(t *testing.T) {
	s := newTestServer(t)
	status, _ := s.do(http.MethodPost, "/auth/signup", "", map[string]string{"name": "Cy", "email": "cy@campus.test", "password": "password1"}, nil)
	require.Equal(t, http.StatusCreated, status)
	token := s.login("/auth/login", map[string]string{"email": "cy@campus.test", "password": "password1"})

	req, err := http.NewRequest(http.MethodGet, s.srv.URL+"/tickets/TICKET-7/qr?size=128", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))
}
