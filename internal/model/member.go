package model

import (
	"time"
)

type MemberRole string

const (
	RoleUser  MemberRole = "USER"
	RoleAdmin MemberRole = "ADMIN"
)

type MemberState string

const (
	StateActive   MemberState = "ACTIVE"
	StateInactive MemberState = "INACTIVE"
)

type Course string

const (
	CourseFullstack Course = "FULLSTACK"
	CourseBackend   Course = "BACKEND"
	CourseFrontend  Course = "FRONTEND"
	CourseDesign    Course = "DESIGN"
)

type Member struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Email           string      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password        string      `gorm:"size:255;not null" json:"-"`
	IsSocial        bool        `gorm:"not null;default:false" json:"is_social"`
	Name            string      `gorm:"size:50;not null" json:"name"`
	Nickname        string      `gorm:"size:50;not null" json:"nickname"`
	ProfileImageURL string      `gorm:"type:text" json:"profile_image_url,omitempty"`
	Course          *Course     `gorm:"size:20" json:"course,omitempty"`
	Role            MemberRole  `gorm:"size:20;not null;default:USER" json:"role"`
	State           MemberState `gorm:"size:20;not null;default:ACTIVE" json:"state"`
	HasEmailConsent bool        `gorm:"not null;default:false" json:"has_email_consent"`
	TeamID          *uint       `json:"team_id,omitempty"`
	Team            *Team       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"team,omitempty"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}
