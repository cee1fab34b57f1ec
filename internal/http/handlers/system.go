package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homeservices/internal/metrics"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Home renders the public landing page.
func Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", nil)
}

func Metrics() gin.HandlerFunc {
	return gin.WrapH(metrics.Handler())
}
