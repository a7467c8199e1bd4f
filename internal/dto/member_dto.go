package dto

import (
	"time"

	"github.com/yeol2/8-pumati-be/internal/model"
)

type MemberOAuthSignupRequest struct {
	SignupToken     string           `json:"signup_token" binding:"required"`
	Name            string           `json:"name" binding:"required,max=10"`
	Nickname        string           `json:"nickname" binding:"required,max=50"`
	ProfileImageURL string           `json:"profile_image_url"`
	Term            *int             `json:"term" binding:"omitempty,gt=0"`
	TeamNumber      *int             `json:"team_number" binding:"omitempty,gt=0"`
	Course          *model.Course    `json:"course" binding:"omitempty,oneof=FULLSTACK BACKEND FRONTEND DESIGN"`
	Role            model.MemberRole `json:"role" binding:"required,oneof=USER ADMIN"`
}

type AiMemberSignupRequest struct {
	Name     string `json:"name" binding:"omitempty,max=10"`
	Nickname string `json:"nickname" binding:"omitempty,max=50"`
}

// MemberUpdateRequest carries partial updates: nil fields are left untouched.
type MemberUpdateRequest struct {
	Name            *string           `json:"name" binding:"omitempty,max=10"`
	Nickname        *string           `json:"nickname" binding:"omitempty,max=50"`
	ProfileImageURL *string           `json:"profile_image_url"`
	Term            *int              `json:"term" binding:"omitempty,gt=0"`
	TeamNumber      *int              `json:"team_number" binding:"omitempty,gt=0"`
	Course          *model.Course     `json:"course" binding:"omitempty,oneof=FULLSTACK BACKEND FRONTEND DESIGN"`
	Role            *model.MemberRole `json:"role" binding:"omitempty,oneof=USER ADMIN"`
}

type MemberResponse struct {
	ID              uint              `json:"id"`
	TeamID          *uint             `json:"team_id,omitempty"`
	Term            *int              `json:"term,omitempty"`
	TeamNumber      *int              `json:"team_number,omitempty"`
	Email           string            `json:"email"`
	IsSocial        bool              `json:"is_social"`
	Name            string            `json:"name"`
	Nickname        string            `json:"nickname"`
	Course          *model.Course     `json:"course,omitempty"`
	ProfileImageURL string            `json:"profile_image_url,omitempty"`
	Role            model.MemberRole  `json:"role"`
	State           model.MemberState `json:"state"`
	HasEmailConsent bool              `json:"has_email_consent"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type MemberSignupResponse struct {
	ID          uint   `json:"id"`
	TeamID      *uint  `json:"team_id,omitempty"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Nickname    string `json:"nickname"`
	Role        string `json:"role"`
	State       string `json:"state"`
	AccessToken string `json:"access_token"`
}

type AiMemberSignupResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}

// NewMemberResponse maps a member entity (with team preloaded when set) to its
// response shape.
func NewMemberResponse(m *model.Member) *MemberResponse {
	resp := &MemberResponse{
		ID:              m.ID,
		TeamID:          m.TeamID,
		Email:           m.Email,
		IsSocial:        m.IsSocial,
		Name:            m.Name,
		Nickname:        m.Nickname,
		Course:          m.Course,
		ProfileImageURL: m.ProfileImageURL,
		Role:            m.Role,
		State:           m.State,
		HasEmailConsent: m.HasEmailConsent,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}

	if m.Team != nil {
		resp.Term = &m.Team.Term
		resp.TeamNumber = &m.Team.Number
	}

	return resp
}
