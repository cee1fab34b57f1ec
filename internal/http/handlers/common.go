package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homeservices/internal/http/middleware"
	"homeservices/internal/services"
)

// Handlers carries the collaborators every endpoint needs. Build it once at startup.
type Handlers struct {
	Bookings services.BookingService
	Workers  services.WorkerService
	Auth     services.AuthService
	Export   services.ExportService
	Log      *zap.Logger

	// SecureCookie marks the session cookie Secure (HTTPS deployments).
	SecureCookie bool
	SessionTTL   time.Duration
}

// fail logs the cause with the request id and writes the mapped error response.
func (h *Handlers) fail(c *gin.Context, action string, err error) {
	h.logger().Error(action+" failed",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)
	_ = c.Error(err)
	RespondDomainError(c, err)
}

func (h *Handlers) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}
