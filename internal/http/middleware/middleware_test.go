package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeservices/internal/domain"
	"homeservices/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier struct {
	token string
	err   error
}

func (s stubVerifier) Verify(_ context.Context, token string) (domain.AdminSession, error) {
	if s.err != nil {
		return domain.AdminSession{}, s.err
	}
	if token != s.token || token == "" {
		return domain.AdminSession{}, domain.UnauthorizedError{Reason: "bad token"}
	}
	return domain.AdminSession{ID: "sid", Username: "admin"}, nil
}

func guarded(v SessionVerifier, hit *bool) *gin.Engine {
	r := gin.New()
	r.GET("/admin/bookings", RequireAdmin(v, nil), func(c *gin.Context) {
		*hit = true
		sess, ok := GetAdminSession(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, sess.Username)
	})
	return r
}

func TestRequireAdminRedirectsWithoutSession(t *testing.T) {
	hit := false
	r := guarded(stubVerifier{token: "good"}, &hit)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/bookings", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	assert.False(t, hit, "handler must not run")
}

func TestRequireAdminRedirectsOnBadToken(t *testing.T) {
	for _, v := range []SessionVerifier{
		stubVerifier{token: "good"},
		stubVerifier{err: domain.UpstreamError{Service: "session store", Err: errors.New("down")}},
	} {
		hit := false
		r := guarded(v, &hit)
		req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.False(t, hit)
	}
}

func TestRequireAdminPassesValidSession(t *testing.T) {
	hit := false
	r := guarded(stubVerifier{token: "good"}, &hit)
	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Body.String())
	assert.True(t, hit)
}

func TestRequestIDPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, utils.RequestIDFrom(c.Request.Context()))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Len(t, rec.Body.String(), 36, "generated ids are uuids")
}

func mustCORS(t *testing.T, origins ...string) gin.HandlerFunc {
	t.Helper()
	mw, err := CORS(origins)
	require.NoError(t, err)
	return mw
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := gin.New()
	r.Use(mustCORS(t, "https://shop.example.com"))
	r.POST("/api/bookings", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://shop.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCORSWildcard(t *testing.T) {
	r := gin.New()
	r.Use(mustCORS(t, "*"))
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://any.example.org")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsMalformedOrigins(t *testing.T) {
	for _, origins := range [][]string{
		{"example.com"},
		{"https://shop.example.com", "shop.example.org"},
		{"ftp://files.example.com"},
		{"https://shop.example.com/path"},
		{},
		{" "},
	} {
		mw, err := CORS(origins)
		assert.Error(t, err, "origins %q", origins)
		assert.Nil(t, mw)
	}
}

func TestRateLimiterRejectsBurstOverflow(t *testing.T) {
	rl := NewRateLimiter(2)
	r := gin.New()
	r.POST("/admin/login", rl.Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	require.Len(t, codes, 3)
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
