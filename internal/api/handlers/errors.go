package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/ora-lists/internal/service"
	"github.com/gin-gonic/gin"
)

// respondError writes the status and message for an access-layer error.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch service.KindOf(err) {
	case service.ErrBadRequest:
		status = http.StatusBadRequest
	case service.ErrForbidden:
		status = http.StatusUnauthorized
	case service.ErrNotFound:
		status = http.StatusNotFound
	case service.ErrNotUnique:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": service.MessageOf(err)})
}
