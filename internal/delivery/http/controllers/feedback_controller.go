package controllers

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// CreateFeedbackRequest is the request body for POST /events/{eventID}/feedback.
type CreateFeedbackRequest struct {
	OverallRating      int     `json:"overall_rating"`
	ContentRating      *int    `json:"content_rating"`
	OrganizationRating *int    `json:"organization_rating"`
	VenueRating        *int    `json:"venue_rating"`
	Comments           *string `json:"comments"`
	WouldRecommend     bool    `json:"would_recommend"`
	Anonymous          bool    `json:"anonymous"`
}

// Validate implements Validator. All ratings are on a 1..5 scale.
func (f CreateFeedbackRequest) Validate() []string {
	var errs []string
	if f.OverallRating < 1 || f.OverallRating > 5 {
		errs = append(errs, "overall_rating must be between 1 and 5")
	}
	for name, v := range map[string]*int{
		"content_rating":      f.ContentRating,
		"organization_rating": f.OrganizationRating,
		"venue_rating":        f.VenueRating,
	} {
		if v != nil && (*v < 1 || *v > 5) {
			errs = append(errs, name+" must be between 1 and 5")
		}
	}
	return errs
}

// FeedbackSuccessResponse is the success response envelope for POST /events/{eventID}/feedback (201).
type FeedbackSuccessResponse struct {
	Data  *domain.Feedback  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListFeedbackResponse is the response body for GET /events/{eventID}/feedback.
type ListFeedbackResponse struct {
	Feedback   []*domain.Feedback      `json:"feedback"`
	Summary    *domain.FeedbackSummary `json:"summary"`
	Pagination helpers.PaginationMeta  `json:"pagination"`
}

// ListFeedbackSuccessResponse is the success response envelope for GET /events/{eventID}/feedback (200).
type ListFeedbackSuccessResponse struct {
	Data  ListFeedbackResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type FeedbackController struct {
	Logger  *slog.Logger
	Service domain.FeedbackService
}

func NewFeedbackController(logger *slog.Logger, svc domain.FeedbackService) *FeedbackController {
	return &FeedbackController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Submit feedback for an event
// @Description Submit feedback for an event the authenticated student attended. Requires a recorded check-in; one feedback per attendance.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param feedback body CreateFeedbackRequest true "Feedback data"
// @Success 201 {object} controllers.FeedbackSuccessResponse "data contains the created feedback"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state (feedback already submitted)"
// @Failure 422 {object} helpers.APIResponse "error.code: not_registered (no attendance recorded)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/feedback [post]
func (c *FeedbackController) Create(w http.ResponseWriter, r *http.Request) {
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
	var req CreateFeedbackRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	feedback := &domain.Feedback{
		OverallRating:      req.OverallRating,
		ContentRating:      req.ContentRating,
		OrganizationRating: req.OrganizationRating,
		VenueRating:        req.VenueRating,
		Comments:           req.Comments,
		WouldRecommend:     req.WouldRecommend,
		Anonymous:          req.Anonymous,
	}
	created, err := c.Service.Create(r.Context(), eventID, userID, feedback)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ListByEvent godoc
// @Summary List feedback for an event
// @Description List feedback for an event along with the aggregate summary (count and average overall rating). Paginated.
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListFeedbackSuccessResponse "data contains feedback, summary, and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/feedback [get]
func (c *FeedbackController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	p := helpers.ParsePagination(r)
	items, total, summary, err := c.Service.ListByEvent(r.Context(), eventID, p)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListFeedbackResponse{
		Feedback:   items,
		Summary:    summary,
		Pagination: helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}
