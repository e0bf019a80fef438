package handler

import (
	"errors"
	"net/http"

	"devshare/internal/domain"
	"devshare/internal/httputil"
)

// handleError converts domain errors to HTTP responses. The caller-facing
// shape is always a structured outcome naming its kind - validation,
// referential and concurrency failures never propagate as bare 500s.
func handleError(w http.ResponseWriter, err error) {
	var (
		validationErr  *domain.ValidationError
		referentialErr *domain.ReferentialError
		conflictErr    *domain.ConflictError
	)

	switch {
	case errors.As(err, &validationErr):
		httputil.RespondErrorWithExtras(w, validationErr.StatusCode(), "validation failed", map[string]interface{}{
			"kind":   "ValidationError",
			"errors": validationErr.Fields,
		})
	case errors.As(err, &referentialErr):
		httputil.RespondErrorWithExtras(w, referentialErr.StatusCode(), referentialErr.Error(), map[string]interface{}{
			"kind":              "ReferentialError",
			"relatedQuestionId": referentialErr.RelatedQuestionID,
		})
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, conflictErr.StatusCode(), conflictErr.Error(), map[string]interface{}{
			"kind": "ConcurrencyConflict",
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
