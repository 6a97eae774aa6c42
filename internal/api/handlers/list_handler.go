package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/ora-lists/internal/api/middleware"
	"github.com/Marga-Ghale/ora-lists/internal/models"
	"github.com/Marga-Ghale/ora-lists/internal/service"
	"github.com/Marga-Ghale/ora-lists/internal/types"
	"github.com/gin-gonic/gin"
)

// ============================================
// List Handler
// ============================================

type ListHandler struct {
	listService service.ListService
}

func (h *ListHandler) List(c *gin.Context) {
	profileID, ok := middleware.RequireProfileID(c)
	if !ok {
		return
	}

	lists, err := h.listService.AllForProfile(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.ListResponse, len(lists))
	for i, l := range lists {
		response[i] = toListResponse(l)
	}

	c.JSON(http.StatusOK, response)
}

func (h *ListHandler) Create(c *gin.Context) {
	var req models.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, _ := types.ParseMemberRole(req.Role, types.RoleAdmin)
	list, err := h.listService.Insert(c.Request.Context(), req.Name, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toListResponse(list))
}

func (h *ListHandler) Get(c *gin.Context) {
	profileID, ok := middleware.RequireProfileID(c)
	if !ok {
		return
	}

	list, err := h.listService.Find(c.Request.Context(), profileID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toListResponse(list))
}

func (h *ListHandler) Update(c *gin.Context) {
	var req models.UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.listService.Update(c.Request.Context(), c.Param("id"), service.ListPatch{Name: req.Name})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toListResponse(list))
}

func (h *ListHandler) Delete(c *gin.Context) {
	if err := h.listService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (h *ListHandler) RegenerateInviteCode(c *gin.Context) {
	list, err := h.listService.UpdateInviteCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toListResponse(list))
}

func (h *ListHandler) Contents(c *gin.Context) {
	categories, err := h.listService.Contents(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = toCategoryResponse(category)
	}

	c.JSON(http.StatusOK, response)
}

func (h *ListHandler) RemoveMember(c *gin.Context) {
	list, err := h.listService.RemoveMember(c.Request.Context(), c.Param("id"), c.Param("memberId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toListResponse(list))
}

func (h *ListHandler) UpdateMemberRole(c *gin.Context) {
	var req models.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.listService.UpdateMemberRole(c.Request.Context(), c.Param("id"), c.Param("memberId"), types.MemberRole(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toListResponse(list))
}
