package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// CORSConfig lists what browsers on other origins, such as the web recorder,
// may send
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int
}

// DefaultCORSConfig allows any origin to post recordings and read the
// request ID back
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Accept", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        600,
	}
}

// CORS answers preflight requests itself and decorates every other response
func CORS(config CORSConfig) gin.HandlerFunc {
	wildcard := lo.Contains(config.AllowOrigins, "*")
	fixed := corsHeaders(config)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case wildcard:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && lo.Contains(config.AllowOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}

		for name, value := range fixed {
			c.Header(name, value)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func corsHeaders(config CORSConfig) map[string]string {
	headers := make(map[string]string)
	if len(config.AllowMethods) > 0 {
		headers["Access-Control-Allow-Methods"] = strings.Join(config.AllowMethods, ", ")
	}
	if len(config.AllowHeaders) > 0 {
		headers["Access-Control-Allow-Headers"] = strings.Join(config.AllowHeaders, ", ")
	}
	if len(config.ExposeHeaders) > 0 {
		headers["Access-Control-Expose-Headers"] = strings.Join(config.ExposeHeaders, ", ")
	}
	if config.AllowCredentials {
		headers["Access-Control-Allow-Credentials"] = "true"
	}
	if config.MaxAge > 0 {
		headers["Access-Control-Max-Age"] = strconv.Itoa(config.MaxAge)
	}
	return headers
}
