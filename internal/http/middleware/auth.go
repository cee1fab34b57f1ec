package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homeservices/internal/domain"
)

const (
	// SessionCookie carries the signed admin session token.
	SessionCookie = "admin_session"
	LoginPath     = "/admin/login"

	adminSessionKey = "admin_session"
)

// SessionVerifier resolves a session token into the admin session it represents.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (domain.AdminSession, error)
}

// RequireAdmin redirects to the login page unless the request carries a live admin session.
func RequireAdmin(v SessionVerifier, l *zap.Logger) gin.HandlerFunc {
	if l == nil {
		l = zap.NewNop()
	}
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie)
		sess, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			if !domain.IsUnauthorized(err) {
				l.Error("admin session check failed", zap.String("request_id", GetRequestID(c)), zap.Error(err))
			}
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Set(adminSessionKey, sess)
		c.Next()
	}
}

// GetAdminSession returns the session stored by RequireAdmin.
func GetAdminSession(c *gin.Context) (domain.AdminSession, bool) {
	v, ok := c.Get(adminSessionKey)
	if !ok {
		return domain.AdminSession{}, false
	}
	sess, ok := v.(domain.AdminSession)
	return sess, ok
}
