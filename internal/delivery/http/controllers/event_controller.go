package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// CreateEventRequest is the request body for POST /events. Code, counters,
// and timestamps are server-generated.
type CreateEventRequest struct {
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Type                 string    `json:"type"`
	Venue                string    `json:"venue"`
	Capacity             int       `json:"capacity"`
	StartsAt             time.Time `json:"starts_at"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	RegistrationFee      float64   `json:"registration_fee"`
	CollegeID            string    `json:"college_id"`
	Status               string    `json:"status"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if !domain.EventType(c.Type).Valid() {
		errs = append(errs, "type must be one of workshop, seminar, fest, hackathon, sports, cultural")
	}
	if c.Capacity < 1 {
		errs = append(errs, "capacity must be at least 1")
	}
	if c.StartsAt.IsZero() {
		errs = append(errs, "starts_at is required")
	}
	if c.RegistrationDeadline.IsZero() {
		errs = append(errs, "registration_deadline is required")
	}
	if c.CollegeID == "" {
		errs = append(errs, "college_id is required")
	}
	if c.Status != "" && !domain.EventStatus(c.Status).Valid() {
		errs = append(errs, "status must be one of draft, active, cancelled, completed")
	}
	if c.RegistrationFee < 0 {
		errs = append(errs, "registration_fee must not be negative")
	}
	return errs
}

// SetEventStatusRequest is the request body for PATCH /events/{eventID}/status.
type SetEventStatusRequest struct {
	Status           string `json:"status"`
	RegistrationOpen *bool  `json:"registration_open"`
}

// Validate implements Validator.
func (s SetEventStatusRequest) Validate() []string {
	var errs []string
	if !domain.EventStatus(s.Status).Valid() {
		errs = append(errs, "status must be one of draft, active, cancelled, completed")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for single-event endpoints.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsResponse is the response body for GET /events.
type ListEventsResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create an event
// @Description Create a campus event. The event code is derived from the college code and a per-college sequence. The authenticated admin becomes the creator. Registration opens immediately unless status is draft.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown college)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event := &domain.Event{
		Name:                 req.Name,
		Description:          req.Description,
		Type:                 domain.EventType(req.Type),
		Venue:                req.Venue,
		Capacity:             req.Capacity,
		StartsAt:             req.StartsAt,
		RegistrationDeadline: req.RegistrationDeadline,
		RegistrationFee:      req.RegistrationFee,
		Status:               domain.EventStatus(req.Status),
		CollegeID:            req.CollegeID,
		CreatedBy:            userID,
	}
	if err := c.Service.Create(r.Context(), event); err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetByID godoc
// @Summary Get an event by ID or code
// @Description Fetch one event. The path accepts either the UUID or the human-readable event code (e.g. EVT042_COL001).
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID) or event code"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetByID(r.Context(), eventID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// List godoc
// @Summary List events
// @Description List events, optionally filtered by college_id, status, and type. Paginated.
// @Tags events
// @Produce json
// @Param college_id query string false "Filter by college ID"
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by type"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains events and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter domain.EventFilter
	if v := q.Get("college_id"); v != "" {
		filter.CollegeID = &v
	}
	if v := q.Get("status"); v != "" {
		status := domain.EventStatus(v)
		if !status.Valid() {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid status filter")
			return
		}
		filter.Status = &status
	}
	if v := q.Get("type"); v != "" {
		typ := domain.EventType(v)
		if !typ.Valid() {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid type filter")
			return
		}
		filter.Type = &typ
	}
	p := helpers.ParsePagination(r)
	events, total, err := c.Service.List(r.Context(), filter, p)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// SetStatus godoc
// @Summary Change event status
// @Description Transition the event lifecycle status and toggle whether registration is open. registration_open defaults to true only when the new status is active.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param status body SetEventStatusRequest true "New status"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/status [patch]
func (c *EventController) SetStatus(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req SetEventStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	status := domain.EventStatus(req.Status)
	registrationOpen := status == domain.EventStatusActive
	if req.RegistrationOpen != nil {
		registrationOpen = *req.RegistrationOpen
	}
	event, err := c.Service.SetStatus(r.Context(), eventID, status, registrationOpen)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
