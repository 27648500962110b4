package models

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	UserID       uint64         `gorm:"not null;index" json:"user_id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:varchar(280)" json:"description"`
	Actionable   bool           `gorm:"not null;default:false" json:"actionable"`
	Seen         bool           `gorm:"not null;default:false" json:"seen"`
	InvitationID *uint64        `json:"invitation_id,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User       User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Invitation *Invitation `gorm:"foreignKey:InvitationID" json:"invitation,omitempty"`
}
