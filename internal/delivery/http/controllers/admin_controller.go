package controllers

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// ListUsersSuccessResponse is the success response envelope for GET /admin/users (200).
type ListUsersSuccessResponse struct {
	Data  helpers.Page[*domain.UserProfile] `json:"data"`
	Error *helpers.APIError                 `json:"error"`
}

// UserSuccessResponse is the success response envelope for endpoints returning one profile (200).
type UserSuccessResponse struct {
	Data  *domain.UserProfile `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// AdminController handles super-admin account management.
type AdminController struct {
	Logger  *slog.Logger
	Service domain.AdminService
}

// NewAdminController creates an AdminController with the given logger and service.
func NewAdminController(logger *slog.Logger, svc domain.AdminService) *AdminController {
	return &AdminController{
		Logger:  logger,
		Service: svc,
	}
}

// ListUsers godoc
// @Summary List accounts
// @Description Returns every attendee and organizer account, paginated. Super-admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListUsersSuccessResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	users, err := c.Service.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.Paginate(users, params))
}

// ToggleBlock godoc
// @Summary Block or unblock an account
// @Description Flips the blocked flag of the account and returns the updated profile. The super-admin cannot be blocked.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} controllers.UserSuccessResponse "data contains the updated user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/users/{userID}/toggle-block [post]
func (c *AdminController) ToggleBlock(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userID")
		return
	}
	user, err := c.Service.ToggleBlock(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if user == nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
