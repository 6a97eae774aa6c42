package handlers

import (
	"github.com/Marga-Ghale/ora-lists/internal/models"
	"github.com/Marga-Ghale/ora-lists/internal/repository"
	"github.com/Marga-Ghale/ora-lists/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Profile     *ProfileHandler
	List        *ListHandler
	Invite      *InviteHandler
	Maintenance *MaintenanceHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Profile:     &ProfileHandler{},
		List:        &ListHandler{listService: services.List},
		Invite:      &InviteHandler{listService: services.List},
		Maintenance: &MaintenanceHandler{listService: services.List},
	}
}

// ============================================
// Response Mappers
// ============================================

func toProfileResponse(p *repository.Profile) models.ProfileResponse {
	return models.ProfileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Email:     p.Email,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
	}
}

func toMemberResponse(m *repository.Member) models.MemberResponse {
	resp := models.MemberResponse{
		ID:        m.ID,
		ListID:    m.ListID,
		ProfileID: m.ProfileID,
		Role:      m.Role.String(),
		CreatedAt: m.CreatedAt,
	}
	if m.Profile != nil {
		profile := toProfileResponse(m.Profile)
		resp.Profile = &profile
	}
	return resp
}

func toListResponse(l *repository.List) models.ListResponse {
	resp := models.ListResponse{
		ID:         l.ID,
		Name:       l.Name,
		ProfileID:  l.ProfileID,
		InviteCode: l.InviteCode,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
	if len(l.Members) > 0 {
		resp.Members = make([]models.MemberResponse, len(l.Members))
		for i, m := range l.Members {
			resp.Members[i] = toMemberResponse(m)
		}
	}
	return resp
}

func toCategoryResponse(c *repository.Category) models.CategoryResponse {
	items := make([]models.ItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = models.ItemResponse{
			ID:         item.ID,
			CategoryID: item.CategoryID,
			Name:       item.Name,
			Checked:    item.Checked,
			Selected:   item.Selected,
		}
	}
	return models.CategoryResponse{
		ID:    c.ID,
		Name:  c.Name,
		Items: items,
	}
}
