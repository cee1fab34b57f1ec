package middleware

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS applies ALLOWED_ORIGIN. "*" allows every origin; otherwise each entry must
// be an http(s) origin, and a malformed or empty list is rejected.
func CORS(origins []string) (gin.HandlerFunc, error) {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        24 * time.Hour,
	}

	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg), nil
		}
		if err := validOrigin(o); err != nil {
			return nil, err
		}
		allowed = append(allowed, o)
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("cors: no allowed origins configured (use * to allow all)")
	}

	cfg.AllowOrigins = allowed
	cfg.AllowCredentials = true
	return cors.New(cfg), nil
}

func validOrigin(o string) error {
	u, err := url.Parse(o)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || u.Path != "" || u.RawQuery != "" {
		return fmt.Errorf("cors: invalid origin %q (want scheme://host[:port])", o)
	}
	return nil
}
