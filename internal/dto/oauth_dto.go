package dto

type OAuthCreateRequest struct {
	MemberID   uint   `json:"member_id" binding:"required"`
	Provider   string `json:"provider" binding:"required"`
	ProviderID string `json:"provider_id" binding:"required"`
}
