package models

import "time"

// ============================================
// Profile DTOs
// ============================================

type ProfileResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ============================================
// List DTOs
// ============================================

type CreateListRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role,omitempty" binding:"omitempty,oneof=ADMIN GUEST"`
}

type UpdateListRequest struct {
	Name *string `json:"name,omitempty"`
}

type ListResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	ProfileID  string           `json:"profileId"`
	InviteCode string           `json:"inviteCode"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
	Members    []MemberResponse `json:"members,omitempty"`
}

type JoinResponse struct {
	List          ListResponse `json:"list"`
	AlreadyMember bool         `json:"alreadyMember"`
}

// ============================================
// Member DTOs
// ============================================

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN GUEST"`
}

type MemberResponse struct {
	ID        string           `json:"id"`
	ListID    string           `json:"listId"`
	ProfileID string           `json:"profileId"`
	Role      string           `json:"role"`
	CreatedAt time.Time        `json:"createdAt"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
}

// ============================================
// Content DTOs
// ============================================

type ItemResponse struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Checked    bool   `json:"checked"`
	Selected   bool   `json:"selected"`
}

type CategoryResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Items []ItemResponse `json:"items"`
}

type PopulateResponse struct {
	Message    string `json:"message"`
	Categories int    `json:"categories"`
	Items      int    `json:"items"`
}
