package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/ora-lists/internal/api/middleware"
	"github.com/Marga-Ghale/ora-lists/internal/models"
	"github.com/Marga-Ghale/ora-lists/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// Invite Handler
// ============================================

type InviteHandler struct {
	listService service.ListService
}

// Get returns the list behind an invite code when the caller already belongs
// to it, 404 otherwise.
func (h *InviteHandler) Get(c *gin.Context) {
	profileID, ok := middleware.RequireProfileID(c)
	if !ok {
		return
	}

	list, err := h.listService.FindByInviteCode(c.Request.Context(), profileID, c.Param("inviteCode"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toListResponse(list))
}

func (h *InviteHandler) Join(c *gin.Context) {
	result, err := h.listService.Join(c.Request.Context(), c.Param("inviteCode"))
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyMember {
		status = http.StatusOK
	}
	c.JSON(status, models.JoinResponse{
		List:          toListResponse(result.List),
		AlreadyMember: result.AlreadyMember,
	})
}
