package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// statusFor maps a service error onto an HTTP status, error code and client message.
// Unknown errors are internal.
func statusFor(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrAccountBlocked):
		return http.StatusForbidden, helpers.ErrCodeAccountBlocked, "account is blocked or pending approval"
	case errors.Is(err, domain.ErrNotInstitution):
		return http.StatusForbidden, helpers.ErrCodeForbidden, domain.ErrNotInstitution.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, helpers.ErrCodeNotFound, "user not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, helpers.ErrCodeNotFound, "not found"
	case errors.Is(err, domain.ErrLegacyRecoveryConflict):
		return http.StatusConflict, helpers.ErrCodeConflict, "request email already belongs to an account"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, helpers.ErrCodeConflict, "email already in use"
	case errors.Is(err, domain.ErrLegacyRecoveryDisabled):
		return http.StatusConflict, helpers.ErrCodeConflict, "request is not linked to an account"
	case errors.Is(err, domain.ErrMediaDisabled):
		return http.StatusServiceUnavailable, helpers.ErrCodeServiceUnavailable, "image uploads are not configured"
	}
	return http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error"
}

// writeServiceError writes the envelope for err, logging anything that maps to a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, code, msg)
}

// currentUserID returns the authenticated user id or writes a 401.
func currentUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
	}
	return userID, ok
}
