package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resethq/reset-backend/internal/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps the error taxonomy onto status codes: auth 401,
// validation 400, local persistence 503, anything else 500. Degraded and
// sync-pending outcomes never reach here, services report those as flags on
// a 200 payload.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotAuthenticated):
		RespondError(c, http.StatusUnauthorized, "not_authenticated", err)
	case apperr.IsValidation(err):
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
	case isPersistence(err):
		RespondError(c, http.StatusServiceUnavailable, "storage_unavailable", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}

func isPersistence(err error) bool {
	var pe *apperr.PersistenceError
	return errors.As(err, &pe)
}
