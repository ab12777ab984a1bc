package controllers

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// RegisterRequest is the request body for POST /events/{eventID}/registrations.
type RegisterRequest struct {
	SpecialRequirements *string `json:"special_requirements"`
}

// CancelRegistrationRequest is the request body for POST /registrations/{registrationID}/cancel.
type CancelRegistrationRequest struct {
	Reason *string `json:"reason"`
}

// RecordPaymentRequest is the request body for POST /registrations/{registrationID}/payment.
type RecordPaymentRequest struct {
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
	Ref    *string `json:"ref"`
}

// Validate implements Validator.
func (p RecordPaymentRequest) Validate() []string {
	var errs []string
	if !domain.PaymentStatus(p.Status).Valid() {
		errs = append(errs, "status must be one of pending, paid, refunded, not_required")
	}
	if p.Amount < 0 {
		errs = append(errs, "amount must not be negative")
	}
	return errs
}

// RegistrationSuccessResponse is the success response envelope for single-registration endpoints.
type RegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// CancellationSuccessResponse is the success response envelope for POST /registrations/{registrationID}/cancel (200).
type CancellationSuccessResponse struct {
	Data  *domain.CancellationResult `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// ListRegistrationsResponse is the response body for registration list endpoints.
type ListRegistrationsResponse struct {
	Registrations []*domain.Registration `json:"registrations"`
	Pagination    helpers.PaginationMeta `json:"pagination"`
}

// ListRegistrationsSuccessResponse is the success response envelope for registration list endpoints (200).
type ListRegistrationsSuccessResponse struct {
	Data  ListRegistrationsResponse `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register for an event
// @Description Register the authenticated student for an event. While capacity remains the registration is accepted with status "registered"; once capacity is reached new registrations are waitlisted. Closed, draft, cancelled, and past-deadline events reject registration.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param registration body RegisterRequest false "Optional details"
// @Success 201 {object} controllers.RegistrationSuccessResponse "data contains the registration with its final status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: duplicate_registration or concurrency_conflict"
// @Failure 422 {object} helpers.APIResponse "error.code: registration_closed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req RegisterRequest
	if r.ContentLength > 0 {
		if !helpers.DecodeAndValidate(w, r, &req) {
			return
		}
	}
	reg, err := c.Service.Register(r.Context(), eventID, userID, req.SpecialRequirements)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// Cancel godoc
// @Summary Cancel a registration
// @Description Cancel a registration. Students may cancel their own; admins may cancel any. Cancelling a registered entry promotes the oldest waitlisted registration for the same event in the same transaction; the promoted registration, if any, is returned alongside the cancelled one.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Param cancellation body CancelRegistrationRequest false "Optional reason"
// @Success 200 {object} controllers.CancellationSuccessResponse "data contains the cancelled and promoted registrations"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state (already cancelled)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID}/cancel [post]
func (c *RegistrationController) Cancel(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if registrationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing registrationID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	role, _ := middleware.RoleFromContext(r.Context())
	var req CancelRegistrationRequest
	if r.ContentLength > 0 {
		if !helpers.DecodeAndValidate(w, r, &req) {
			return
		}
	}
	result, err := c.Service.Cancel(r.Context(), registrationID, userID, role, req.Reason)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// ListByEvent godoc
// @Summary List registrations for an event
// @Description Admin view of all registrations for an event, optionally filtered by status. Paginated, ordered by registration time.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param status query string false "Filter by status (registered, waitlisted, cancelled)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse "data contains registrations and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [get]
func (c *RegistrationController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	filter := domain.RegistrationFilter{EventID: &eventID}
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.RegistrationStatus(v)
		if !status.Valid() {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid status filter")
			return
		}
		filter.Status = &status
	}
	c.list(w, r, filter)
}

// ListMine godoc
// @Summary List the authenticated student's registrations
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (registered, waitlisted, cancelled)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse "data contains registrations and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/registrations [get]
func (c *RegistrationController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	filter := domain.RegistrationFilter{StudentID: &userID}
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.RegistrationStatus(v)
		if !status.Valid() {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid status filter")
			return
		}
		filter.Status = &status
	}
	c.list(w, r, filter)
}

func (c *RegistrationController) list(w http.ResponseWriter, r *http.Request, filter domain.RegistrationFilter) {
	p := helpers.ParsePagination(r)
	regs, total, err := c.Service.List(r.Context(), filter, p)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListRegistrationsResponse{
		Registrations: regs,
		Pagination:    helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

// RecordPayment godoc
// @Summary Record a payment state change
// @Description Record a payment against a non-cancelled registration. Paid and refunded transitions stamp the payment date.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Param payment body RecordPaymentRequest true "Payment data"
// @Success 200 {object} controllers.RegistrationSuccessResponse "data contains the updated registration"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state (registration cancelled)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /registrations/{registrationID}/payment [post]
func (c *RegistrationController) RecordPayment(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if registrationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing registrationID")
		return
	}
	var req RecordPaymentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Service.RecordPayment(r.Context(), registrationID, domain.PaymentStatus(req.Status), req.Amount, req.Ref)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}
