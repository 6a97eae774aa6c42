package middleware

import (
	"log/slog"
	"time"

	"github.com/Marga-Ghale/ora-lists/internal/metrics"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request after it has been handled.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", method,
			"path", path,
			"status", status,
			"duration", time.Since(start),
		}

		switch {
		case status >= 500:
			slog.Error("Request", attrs...)
		case status >= 400:
			slog.Warn("Request", attrs...)
		default:
			slog.Info("Request", attrs...)
		}

		for _, e := range c.Errors {
			slog.Error("Request error", "method", method, "path", path, "error", e.Err)
		}
	}
}

// Metrics records request counts and latency by route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
