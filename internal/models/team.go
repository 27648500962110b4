package models

import (
	"time"

	"gorm.io/gorm"
)

type Team struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	AuthorID    uint64         `gorm:"not null" json:"author_id"`
	Title       string         `gorm:"type:varchar(50);not null" json:"title"`
	Description string         `gorm:"type:varchar(280)" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Author      User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Members     []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Tasks       []Task       `gorm:"foreignKey:TeamID" json:"tasks,omitempty"`
	Invitations []Invitation `gorm:"foreignKey:TeamID" json:"invitations,omitempty"`
}
