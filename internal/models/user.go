package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID                  uint64         `gorm:"primarykey" json:"id"`
	Username            string         `gorm:"type:varchar(30);uniqueIndex;not null" json:"username"`
	FirstName           string         `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName            string         `gorm:"type:varchar(50);not null" json:"last_name"`
	Email               string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash        string         `gorm:"type:varchar(255);not null" json:"-"`
	TotalTasksCompleted int            `gorm:"not null;default:0" json:"total_tasks_completed"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Memberships   []TeamMember     `gorm:"foreignKey:UserID" json:"-"`
	Assignments   []TaskAssignment `gorm:"foreignKey:UserID" json:"-"`
	Notifications []Notification   `gorm:"foreignKey:UserID" json:"-"`
}

// FullName returns the user's first and last name joined by a space.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
