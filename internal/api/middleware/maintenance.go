package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const MaintenanceKeyHeader = "X-Maintenance-Key"

// MaintenanceKey guards maintenance endpoints with a shared key. With no key
// configured the endpoints do not exist.
func MaintenanceKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		given := c.GetHeader(MaintenanceKeyHeader)
		if subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
			slog.Warn("Rejected maintenance request", "context", "MaintenanceKey", "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid maintenance key"})
			return
		}
		c.Next()
	}
}
