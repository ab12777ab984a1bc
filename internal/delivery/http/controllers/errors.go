package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

// writeDomainError maps domain sentinel errors to the API envelope. Unknown
// errors are logged and answered with 500; sentinels keep the request out of
// the error log since they are expected outcomes.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrDuplicateEmail):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeInvalidState, err.Error())
	case errors.Is(err, domain.ErrDuplicateRegistration):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeDuplicateReg, err.Error())
	case errors.Is(err, domain.ErrRegistrationClosed):
		helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeRegistrationClosed, err.Error())
	case errors.Is(err, domain.ErrNotRegistered):
		helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeNotRegistered, err.Error())
	case errors.Is(err, domain.ErrAlreadyCheckedIn):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeAlreadyCheckedIn, err.Error())
	case errors.Is(err, domain.ErrAlreadyCheckedOut):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeAlreadyCheckedOut, err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeInvalidState, err.Error())
	case errors.Is(err, domain.ErrConcurrencyConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConcurrencyConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}
