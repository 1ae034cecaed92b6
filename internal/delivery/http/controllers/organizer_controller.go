package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// OrganizerRequestBody is the request body for POST /organizer-requests.
type OrganizerRequestBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (o OrganizerRequestBody) Validate() []string {
	var errs []string
	if strings.TrimSpace(o.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(o.Email) == "" {
		errs = append(errs, "email is required")
	}
	if o.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// OrganizerRequestSuccessResponse is the success response envelope for POST /organizer-requests (201).
type OrganizerRequestSuccessResponse struct {
	Data  *domain.OrganizerRequest `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ListOrganizerRequestsSuccessResponse is the success response envelope for GET /admin/organizer-requests (200).
type ListOrganizerRequestsSuccessResponse struct {
	Data  []*domain.OrganizerRequest `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// DecisionSuccessResponse is the success response envelope for approve and reject (200).
type DecisionSuccessResponse struct {
	Data  *domain.DecisionOutcome `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// OrganizerController handles organizer onboarding and the admin approval queue.
type OrganizerController struct {
	Logger  *slog.Logger
	Service domain.OnboardingService
}

// NewOrganizerController creates an OrganizerController with the given logger and service.
func NewOrganizerController(logger *slog.Logger, svc domain.OnboardingService) *OrganizerController {
	return &OrganizerController{
		Logger:  logger,
		Service: svc,
	}
}

// Submit godoc
// @Summary Register as an organizer
// @Description Create a blocked INSTITUTION account and a PENDING organizer request. The account can log in once an admin approves the request.
// @Tags organizers
// @Accept json
// @Produce json
// @Param body body OrganizerRequestBody true "Organization details"
// @Success 201 {object} controllers.OrganizerRequestSuccessResponse "data contains the pending request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizer-requests [post]
func (c *OrganizerController) Submit(w http.ResponseWriter, r *http.Request) {
	var req OrganizerRequestBody
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	created, err := c.Service.SubmitOrganizerRequest(r.Context(), domain.SubmitOrganizerInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// List godoc
// @Summary List organizer requests
// @Description Returns every organizer request in submission order. Super-admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListOrganizerRequestsSuccessResponse "data contains the requests"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/organizer-requests [get]
func (c *OrganizerController) List(w http.ResponseWriter, r *http.Request) {
	list, err := c.Service.ListRequests(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if list == nil {
		list = []*domain.OrganizerRequest{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// Approve godoc
// @Summary Approve an organizer request
// @Description Unblocks the linked account and marks the request APPROVED. Missing or already decided requests return applied=false.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Organizer request ID"
// @Success 200 {object} controllers.DecisionSuccessResponse "data contains the outcome"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/organizer-requests/{requestID}/approve [post]
func (c *OrganizerController) Approve(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.Service.Approve)
}

// Reject godoc
// @Summary Reject an organizer request
// @Description Marks the request REJECTED. The linked account stays blocked.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Organizer request ID"
// @Success 200 {object} controllers.DecisionSuccessResponse "data contains the outcome"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/organizer-requests/{requestID}/reject [post]
func (c *OrganizerController) Reject(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, c.Service.Reject)
}

func (c *OrganizerController) decide(w http.ResponseWriter, r *http.Request, decision func(context.Context, string) (*domain.DecisionOutcome, error)) {
	requestID := r.PathValue("requestID")
	if requestID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing requestID")
		return
	}
	outcome, err := decision(r.Context(), requestID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, outcome)
}
