package models

import (
	"time"

	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationInvited  InvitationStatus = "invited"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Invitation is an email-addressed offer to join a team. The email need not
// belong to a registered account when the row is created; accept/decline
// match the invitation against the acting user's account email.
type Invitation struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	TeamID    uint64           `gorm:"not null" json:"team_id"`
	Email     string           `gorm:"type:varchar(255);not null;index" json:"email"`
	Status    InvitationStatus `gorm:"type:varchar(20);not null;default:'invited'" json:"status"`
	DateSent  time.Time        `json:"date_sent"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	Team Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}
