package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/ora-lists/internal/models"
	"github.com/Marga-Ghale/ora-lists/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// Maintenance Handler
// ============================================

type MaintenanceHandler struct {
	listService service.ListService
}

// Populate resets a list's categories and items to the default content.
func (h *MaintenanceHandler) Populate(c *gin.Context) {
	result, err := h.listService.Populate(c.Request.Context(), c.Param("listId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PopulateResponse{
		Message:    "Populate was successful",
		Categories: result.Categories,
		Items:      result.Items,
	})
}
