package dto

import (
	"time"

	"github.com/teamtasks/teamtasks-api/internal/models"
)

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Actionable   bool      `json:"actionable"`
	Seen         bool      `json:"seen"`
	InvitationID *uint64   `json:"invitation_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToNotificationDTO converts a Notification model to NotificationDTO
func ToNotificationDTO(notification models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:           notification.ID,
		Title:        notification.Title,
		Description:  notification.Description,
		Actionable:   notification.Actionable,
		Seen:         notification.Seen,
		InvitationID: notification.InvitationID,
		CreatedAt:    notification.CreatedAt,
	}
}

// ToNotificationDTOs converts a slice of notifications
func ToNotificationDTOs(notifications []models.Notification) []NotificationDTO {
	dtos := make([]NotificationDTO, len(notifications))
	for i, notification := range notifications {
		dtos[i] = ToNotificationDTO(notification)
	}
	return dtos
}
