package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

const (
	// maxImageBytes caps poster uploads.
	maxImageBytes  = 5 << 20
	imageFormField = "image"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title            string `json:"title"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Location         string `json:"location"`
	Description      string `json:"description"`
	ImageURL         string `json:"image_url"`
	RegistrationLink string `json:"registration_link"`
	MapEmbedURL      string `json:"map_embed_url"`
	SheetLink        string `json:"sheet_link"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Date) == "" {
		errs = append(errs, "date is required")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  helpers.Page[*domain.Event] `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// MyEventsSuccessResponse is the success response envelope for GET /events/mine (200).
type MyEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ImageUploadResponse is the data of POST /events/images.
type ImageUploadResponse struct {
	URL string `json:"url"`
}

// ImageUploadSuccessResponse is the success response envelope for POST /events/images (201).
type ImageUploadSuccessResponse struct {
	Data  ImageUploadResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// EventController handles the event catalog.
type EventController struct {
	Logger  *slog.Logger
	Service domain.CatalogService
}

// NewEventController creates an EventController with the given logger and service.
func NewEventController(logger *slog.Logger, svc domain.CatalogService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List events
// @Description Returns the featured events followed by organizer-created events in creation order, paginated.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains items and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.Paginate(events, params))
}

// Get godoc
// @Summary Get an event
// @Description Returns one event by id.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if event == nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Create godoc
// @Summary Create an event
// @Description Publish a new event owned by the authenticated organizer. image_url defaults to a placeholder when empty.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event details"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden or account_blocked"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), userID, domain.EventInput{
		Title:            req.Title,
		Date:             req.Date,
		Time:             req.Time,
		Location:         req.Location,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		RegistrationLink: req.RegistrationLink,
		MapEmbedURL:      req.MapEmbedURL,
		SheetLink:        req.SheetLink,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListMine godoc
// @Summary List my events
// @Description Returns the events created by the authenticated organizer in creation order.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.MyEventsSuccessResponse "data contains the events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/mine [get]
func (c *EventController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	events, err := c.Service.ListByOrganizer(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// UploadImage godoc
// @Summary Upload an event poster
// @Description Upload a JPEG, PNG, WebP or GIF poster (max 5MB) as multipart field "image". Returns the public URL to use as image_url.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Poster image"
// @Success 201 {object} controllers.ImageUploadSuccessResponse "data contains the image url"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/images [post]
func (c *EventController) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	file, header, err := r.FormFile(imageFormField)
	if err != nil {
		msg := "image file is required"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "image exceeds 5MB"
		}
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, msg)
		return
	}
	defer file.Close()

	url, err := c.Service.UploadEventImage(r.Context(), userID, domain.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, ImageUploadResponse{URL: url})
}
