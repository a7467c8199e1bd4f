package model

import "time"

type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Term      int       `gorm:"not null;uniqueIndex:idx_teams_term_number" json:"term"`
	Number    int       `gorm:"not null;uniqueIndex:idx_teams_term_number" json:"number"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
