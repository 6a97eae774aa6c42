package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/ora-lists/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// ============================================
// Profile Handler
// ============================================

type ProfileHandler struct{}

func (h *ProfileHandler) Me(c *gin.Context) {
	profile, ok := middleware.GetProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}
