package controllers

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// CheckInRequest is the request body for POST /events/{eventID}/checkin.
type CheckInRequest struct {
	Method   string  `json:"method"`
	Location *string `json:"location"`
}

// Validate implements Validator.
func (c CheckInRequest) Validate() []string {
	var errs []string
	if c.Method != "" && !domain.CheckInMethod(c.Method).Valid() {
		errs = append(errs, "method must be one of qr_code, manual, mobile_app")
	}
	return errs
}

// AttendanceSuccessResponse is the success response envelope for single-attendance endpoints.
type AttendanceSuccessResponse struct {
	Data  *domain.Attendance `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListAttendanceResponse is the response body for GET /events/{eventID}/attendance.
type ListAttendanceResponse struct {
	Attendance []*domain.Attendance   `json:"attendance"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListAttendanceSuccessResponse is the success response envelope for GET /events/{eventID}/attendance (200).
type ListAttendanceSuccessResponse struct {
	Data  ListAttendanceResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type AttendanceController struct {
	Logger  *slog.Logger
	Service domain.AttendanceService
}

func NewAttendanceController(logger *slog.Logger, svc domain.AttendanceService) *AttendanceController {
	return &AttendanceController{
		Logger:  logger,
		Service: svc,
	}
}

// CheckIn godoc
// @Summary Check in to an event
// @Description Record the authenticated student's check-in. Requires an active registration for the event; repeat check-ins are rejected.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param checkin body CheckInRequest false "Check-in details"
// @Success 201 {object} controllers.AttendanceSuccessResponse "data contains the attendance record"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_checked_in or concurrency_conflict"
// @Failure 422 {object} helpers.APIResponse "error.code: not_registered"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/checkin [post]
func (c *AttendanceController) CheckIn(w http.ResponseWriter, r *http.Request) {
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
	var req CheckInRequest
	if r.ContentLength > 0 {
		if !helpers.DecodeAndValidate(w, r, &req) {
			return
		}
	}
	att, err := c.Service.CheckIn(r.Context(), eventID, userID, domain.CheckInMethod(req.Method), req.Location)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, att)
}

// CheckOut godoc
// @Summary Check out of an event
// @Description Record the check-out time on an attendance record and derive the attended duration in whole minutes. Repeat check-outs are rejected.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param attendanceID path string true "Attendance ID (UUID)"
// @Success 200 {object} controllers.AttendanceSuccessResponse "data contains the updated attendance record"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_checked_out"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendance/{attendanceID}/checkout [post]
func (c *AttendanceController) CheckOut(w http.ResponseWriter, r *http.Request) {
	attendanceID := r.PathValue("attendanceID")
	if attendanceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendanceID")
		return
	}
	att, err := c.Service.CheckOut(r.Context(), attendanceID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, att)
}

// Verify godoc
// @Summary Verify an attendance record
// @Description Mark an attendance record as verified by the authenticated admin. Verification is terminal.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param attendanceID path string true "Attendance ID (UUID)"
// @Success 200 {object} controllers.AttendanceSuccessResponse "data contains the verified attendance record"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state (already verified)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendance/{attendanceID}/verify [post]
func (c *AttendanceController) Verify(w http.ResponseWriter, r *http.Request) {
	attendanceID := r.PathValue("attendanceID")
	if attendanceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendanceID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	att, err := c.Service.Verify(r.Context(), attendanceID, userID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, att)
}

// ListByEvent godoc
// @Summary List attendance for an event
// @Description Admin view of all attendance records for an event, ordered by check-in time. Paginated.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListAttendanceSuccessResponse "data contains attendance records and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendance [get]
func (c *AttendanceController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	p := helpers.ParsePagination(r)
	records, total, err := c.Service.ListByEvent(r.Context(), eventID, p)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListAttendanceResponse{
		Attendance: records,
		Pagination: helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}
