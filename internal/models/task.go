package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	TeamID      uint64         `gorm:"not null" json:"team_id"`
	Title       string         `gorm:"type:varchar(50);not null" json:"title"`
	Description string         `gorm:"type:varchar(280);not null" json:"description"`
	DueDate     time.Time      `gorm:"not null" json:"due_date"`
	IsComplete  bool           `gorm:"not null;default:false" json:"is_complete"`
	IsArchived  bool           `gorm:"not null;default:false" json:"is_archived"`
	Points      int            `gorm:"not null;default:1" json:"points"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Team        Team             `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}
