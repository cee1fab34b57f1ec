package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homeservices/internal/domain"
	"homeservices/internal/http/middleware"
	"homeservices/internal/http/views"
)

const (
	bookingsPath = "/admin/bookings"
	workersPath  = "/admin/workers"
)

func (h *Handlers) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login handles the login form. A failed attempt re-renders the form with a generic error.
func (h *Handlers) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	token, _, err := h.Auth.Login(c.Request.Context(), username, password)
	if err != nil {
		if domain.IsUnauthorized(err) {
			c.HTML(http.StatusOK, "login.html", gin.H{"error": "Invalid login"})
			return
		}
		h.fail(c, "admin login", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.SessionTTL.Seconds()), "/", "", h.SecureCookie, true)
	c.Redirect(http.StatusFound, bookingsPath)
}

// Logout revokes the session (if any) and always lands on the login page.
func (h *Handlers) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil {
		if err := h.Auth.Logout(c.Request.Context(), token); err != nil {
			h.logger().Warn("session revoke failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.SecureCookie, true)
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

func (h *Handlers) AdminHome(c *gin.Context) {
	c.Redirect(http.StatusFound, bookingsPath)
}

func (h *Handlers) ListBookings(c *gin.Context) {
	list, err := h.Bookings.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list bookings", err)
		return
	}
	c.HTML(http.StatusOK, "admin_bookings.html", gin.H{
		"bookings": list,
		"statuses": views.BookingStatuses,
	})
}

func (h *Handlers) ListWorkers(c *gin.Context) {
	list, err := h.Workers.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list workers", err)
		return
	}
	c.HTML(http.StatusOK, "admin_workers.html", gin.H{
		"workers":  list,
		"statuses": views.WorkerStatuses,
	})
}

// UpdateBookingStatus handles GET /admin/update/booking/:id/:status. Any status text is accepted.
func (h *Handlers) UpdateBookingStatus(c *gin.Context) {
	err := h.Bookings.UpdateStatus(c.Request.Context(), c.Param("id"), domain.Status(c.Param("status")))
	if err != nil {
		h.fail(c, "update booking status", err)
		return
	}
	c.Redirect(http.StatusFound, bookingsPath)
}

func (h *Handlers) UpdateWorkerStatus(c *gin.Context) {
	err := h.Workers.UpdateStatus(c.Request.Context(), c.Param("id"), domain.Status(c.Param("status")))
	if err != nil {
		h.fail(c, "update worker status", err)
		return
	}
	c.Redirect(http.StatusFound, workersPath)
}

func (h *Handlers) ExportBookings(c *gin.Context) {
	pdf, filename, err := h.Export.BookingsPDF(c.Request.Context())
	if err != nil {
		h.fail(c, "export bookings", err)
		return
	}
	sendPDF(c, pdf, filename)
}

func (h *Handlers) ExportWorkers(c *gin.Context) {
	pdf, filename, err := h.Export.WorkersPDF(c.Request.Context())
	if err != nil {
		h.fail(c, "export workers", err)
		return
	}
	sendPDF(c, pdf, filename)
}

func sendPDF(c *gin.Context, pdf []byte, filename string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
