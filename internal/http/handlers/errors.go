package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homeservices/internal/domain"
	"homeservices/internal/http/middleware"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Upstream and internal
// failures never expose their cause.
func RespondDomainError(c *gin.Context, err error) {
	var ve domain.ValidationError
	switch {
	case errors.As(err, &ve):
		msg := ve.Msg
		if msg == "" {
			msg = ve.Error()
		}
		respondError(c, http.StatusBadRequest, "validation_error", msg, nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", "unauthorized", nil)
	case domain.IsUpstream(err):
		respondError(c, http.StatusInternalServerError, "upstream_error", "internal server error", nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}
