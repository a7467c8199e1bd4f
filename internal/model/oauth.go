package model

import "time"

// OAuth associates one member with one external identity. A member holds at most
// one row, and a (provider, provider_id) pair is claimed by at most one member.
type OAuth struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MemberID   uint      `gorm:"not null;uniqueIndex" json:"member_id"`
	Member     *Member   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Provider   string    `gorm:"size:30;not null;uniqueIndex:idx_oauth_provider_pair" json:"provider"`
	ProviderID string    `gorm:"size:100;not null;uniqueIndex:idx_oauth_provider_pair" json:"provider_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
