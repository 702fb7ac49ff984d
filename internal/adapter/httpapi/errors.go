package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simaogato/companystats-backend/internal/domain"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptyPopulation):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSourceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError responds with {"detail": ...}. Client errors carry the error
// message; server errors are logged and answered with a generic message
func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)

	detail := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		h.logger.ErrorContext(c.Request.Context(), "record source unavailable", "error", err, "path", c.FullPath())
		detail = domain.ErrSourceUnavailable.Error()
	case http.StatusInternalServerError:
		h.logger.ErrorContext(c.Request.Context(), "request failed", "error", err, "path", c.FullPath())
		detail = "internal server error"
	}

	c.AbortWithStatusJSON(status, errorResponse{Detail: detail})
}
