package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// SignUpRequest is the request body for POST /auth/signup.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Validate implements Validator. Format rules are enforced by the service.
func (s SignUpRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(s.Email) == "" {
		errs = append(errs, "email is required")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginRequest is the request body for POST /auth/login and POST /auth/institution/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(l.Email) == "" {
		errs = append(errs, "email is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// AdminLoginRequest is the request body for POST /auth/admin/login.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// Validate implements Validator.
func (a AdminLoginRequest) Validate() []string {
	if a.Password == "" {
		return []string{"password is required"}
	}
	return nil
}

// IdentityRequest is the request body for POST /auth/identity.
type IdentityRequest struct {
	IDToken string `json:"id_token"`
}

// Validate implements Validator.
func (i IdentityRequest) Validate() []string {
	if strings.TrimSpace(i.IDToken) == "" {
		return []string{"id_token is required"}
	}
	return nil
}

// OnboardingRequest is the request body for POST /auth/identity/onboarding.
type OnboardingRequest struct {
	IDToken string `json:"id_token"`
	// Choice is "ATTENDEE" or "ORGANIZER".
	Choice string `json:"choice"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
}

// Validate implements Validator.
func (o OnboardingRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(o.IDToken) == "" {
		errs = append(errs, "id_token is required")
	}
	switch domain.OnboardingChoice(strings.ToUpper(strings.TrimSpace(o.Choice))) {
	case domain.OnboardAsAttendee, domain.OnboardAsOrganizer:
	default:
		errs = append(errs, `choice must be "ATTENDEE" or "ORGANIZER"`)
	}
	return errs
}

// SignUpSuccessResponse is the success response envelope for POST /auth/signup (201).
type SignUpSuccessResponse struct {
	Data  *domain.UserProfile `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// SessionSuccessResponse is the success response envelope for the login endpoints (200).
type SessionSuccessResponse struct {
	Data  *domain.Session   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// IdentitySuccessResponse is the success response envelope for POST /auth/identity (200).
type IdentitySuccessResponse struct {
	Data  *domain.IdentitySignIn `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// OnboardingSuccessResponse is the success response envelope for POST /auth/identity/onboarding (201).
type OnboardingSuccessResponse struct {
	Data  *domain.OnboardingResult `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// AuthController handles sign-up and every login path.
type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

// NewAuthController creates an AuthController with the given logger and service.
func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUp godoc
// @Summary Sign up an attendee
// @Description Create an unblocked USER account with name, email, optional phone and password (min 8 characters).
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} controllers.SignUpSuccessResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.SignUp(r.Context(), domain.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Description Authenticate any account with email and password. Blocked accounts are refused.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} controllers.SessionSuccessResponse "data contains token, token_type, and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: account_blocked"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	c.writeSession(w, r)(c.Service.Login(r.Context(), req.Email, req.Password))
}

// LoginInstitution godoc
// @Summary Log in as an organizer
// @Description Authenticate an INSTITUTION account. Non-organizer accounts and accounts still pending approval are refused.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} controllers.SessionSuccessResponse "data contains token, token_type, and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden or account_blocked"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/institution/login [post]
func (c *AuthController) LoginInstitution(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	c.writeSession(w, r)(c.Service.LoginInstitution(r.Context(), req.Email, req.Password))
}

// LoginSuperAdmin godoc
// @Summary Log in as the platform admin
// @Description Authenticate with the configured super-admin secret.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body AdminLoginRequest true "Admin secret"
// @Success 200 {object} controllers.SessionSuccessResponse "data contains token, token_type, and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/admin/login [post]
func (c *AuthController) LoginSuperAdmin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	c.writeSession(w, r)(c.Service.LoginSuperAdmin(r.Context(), req.Password))
}

// SignInWithIdentity godoc
// @Summary Sign in with Google
// @Description Exchange a Google identity token. Linked accounts get a session; first-time callers get needs_onboarding=true.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body IdentityRequest true "Identity token"
// @Success 200 {object} controllers.IdentitySuccessResponse "data contains session or needs_onboarding"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: account_blocked"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/identity [post]
func (c *AuthController) SignInWithIdentity(w http.ResponseWriter, r *http.Request) {
	var req IdentityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.SignInWithIdentity(r.Context(), req.IDToken)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// CompleteIdentityOnboarding godoc
// @Summary Finish Google onboarding
// @Description Create the profile for a first-time Google sign-in. ATTENDEE returns a session; ORGANIZER files a pending organizer request and returns no session.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body OnboardingRequest true "Onboarding choice and profile details"
// @Success 201 {object} controllers.OnboardingSuccessResponse "data contains user and session or request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/identity/onboarding [post]
func (c *AuthController) CompleteIdentityOnboarding(w http.ResponseWriter, r *http.Request) {
	var req OnboardingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	choice := domain.OnboardingChoice(strings.ToUpper(strings.TrimSpace(req.Choice)))
	result, err := c.Service.CompleteIdentityOnboarding(r.Context(), req.IDToken, choice, domain.OnboardingDetails{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, result)
}

func (c *AuthController) writeSession(w http.ResponseWriter, r *http.Request) func(*domain.Session, error) {
	return func(session *domain.Session, err error) {
		if err != nil {
			writeServiceError(w, r, c.Logger, err)
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, session)
	}
}
