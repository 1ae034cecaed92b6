package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// ValidateTicketRequest is the request body for POST /tickets/validate.
type ValidateTicketRequest struct {
	Code string `json:"code"`
}

// TicketValidationSuccessResponse is the success response envelope for POST /tickets/validate (200).
type TicketValidationSuccessResponse struct {
	Data  *domain.TicketValidation `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// TicketController handles door scanning and ticket QR codes.
type TicketController struct {
	Logger  *slog.Logger
	Service domain.TicketService
}

// NewTicketController creates a TicketController with the given logger and service.
func NewTicketController(logger *slog.Logger, svc domain.TicketService) *TicketController {
	return &TicketController{
		Logger:  logger,
		Service: svc,
	}
}

// Validate godoc
// @Summary Validate a scanned ticket
// @Description Classifies a scanned code as VALID, USED or INVALID. An empty code is INVALID.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ValidateTicketRequest true "Scanned code"
// @Success 200 {object} controllers.TicketValidationSuccessResponse "data contains the classification"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tickets/validate [post]
func (c *TicketController) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateTicketRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Validate(r.Context(), req.Code)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// QR godoc
// @Summary Render a ticket QR code
// @Description Returns the ticket code as a PNG QR code. size is clamped to 64..1024 pixels (default 256).
// @Tags tickets
// @Produce png
// @Security BearerAuth
// @Param code path string true "Ticket code"
// @Param size query int false "Image size in pixels"
// @Success 200 {file} binary "PNG image"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tickets/{code}/qr [get]
func (c *TicketController) QR(w http.ResponseWriter, r *http.Request) {
	size := 0
	if s := r.URL.Query().Get("size"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "size must be an integer")
			return
		}
		size = v
	}
	png, err := c.Service.RenderQR(r.PathValue("code"), size)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
