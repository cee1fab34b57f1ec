package api

import (
	"fmt"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	intconfig "homeservices/internal/config"
	h "homeservices/internal/http/handlers"
	"homeservices/internal/http/middleware"
	"homeservices/internal/http/views"
)

func NewRouter(env intconfig.Env, hs *h.Handlers, log *zap.Logger) (*gin.Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}

	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	corsMW, err := middleware.CORS(env.AllowedOrigins)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), gin.Recovery(), middleware.Metrics(), corsMW)
	r.SetHTMLTemplate(tmpl)
	r.MaxMultipartMemory = 32 << 20

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/", h.Home)
	r.GET("/metrics", h.Metrics())

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/bookings", hs.CreateBooking)
		api.POST("/workers", hs.CreateWorker)
	}

	admin := r.Group("/admin")
	{
		admin.GET("/login", hs.LoginPage)
		if env.LoginRatePerMin > 0 {
			admin.POST("/login", middleware.NewRateLimiter(env.LoginRatePerMin).Handler(), hs.Login)
		} else {
			admin.POST("/login", hs.Login)
		}
		admin.GET("/logout", hs.Logout)

		protected := admin.Group("")
		protected.Use(middleware.RequireAdmin(hs.Auth, log))
		protected.GET("", hs.AdminHome)
		protected.GET("/bookings", hs.ListBookings)
		protected.GET("/workers", hs.ListWorkers)
		protected.GET("/bookings/export.pdf", hs.ExportBookings)
		protected.GET("/workers/export.pdf", hs.ExportWorkers)
		protected.GET("/update/booking/:id/:status", hs.UpdateBookingStatus)
		protected.GET("/update/worker/:id/:status", hs.UpdateWorkerStatus)
	}

	return r, nil
}
