package controllers

import (
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// CreateCollegeRequest is the request body for POST /colleges.
type CreateCollegeRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Validate implements Validator.
func (c CreateCollegeRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// CreateCollegeSuccessResponse is the success response envelope for POST /colleges (201).
type CreateCollegeSuccessResponse struct {
	Data  *domain.College   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListCollegesSuccessResponse is the success response envelope for GET /colleges (200).
type ListCollegesSuccessResponse struct {
	Data  []*domain.College `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type CollegeController struct {
	Logger  *slog.Logger
	Service domain.CollegeService
}

func NewCollegeController(logger *slog.Logger, svc domain.CollegeService) *CollegeController {
	return &CollegeController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a college
// @Description Register a new college. The college code is server-generated.
// @Tags colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param college body CreateCollegeRequest true "College data"
// @Success 201 {object} controllers.CreateCollegeSuccessResponse "data contains the created college"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /colleges [post]
func (c *CollegeController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCollegeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	college, err := c.Service.Create(r.Context(), req.Name, req.Location)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, college)
}

// List godoc
// @Summary List colleges
// @Tags colleges
// @Produce json
// @Success 200 {object} controllers.ListCollegesSuccessResponse "data contains all colleges"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /colleges [get]
func (c *CollegeController) List(w http.ResponseWriter, r *http.Request) {
	colleges, err := c.Service.List(r.Context())
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, colleges)
}
