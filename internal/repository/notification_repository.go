package repository

import (
	"github.com/teamtasks/teamtasks-api/internal/database"
	"github.com/teamtasks/teamtasks-api/internal/models"
	"github.com/teamtasks/teamtasks-api/internal/utils"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create creates a new notification
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(id uint64) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// FindByInvitation finds the user's notification tied to an invitation
func (r *GormNotificationRepository) FindByInvitation(userID, invitationID uint64) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.
		Where("user_id = ? AND invitation_id = ?", userID, invitationID).
		First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListByUser lists a page of a user's notifications, newest first
func (r *GormNotificationRepository) ListByUser(userID uint64, params utils.PaginationParams) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountByUser counts all of a user's notifications
func (r *GormNotificationRepository) CountByUser(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountUnseen counts a user's unseen notifications
func (r *GormNotificationRepository) CountUnseen(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND seen = ?", userID, false).
		Count(&count).Error
	return count, err
}

// Update updates a notification
func (r *GormNotificationRepository) Update(notification *models.Notification) error {
	return r.db.Save(notification).Error
}

// DeleteByInvitation removes the user's notification tied to an invitation
func (r *GormNotificationRepository) DeleteByInvitation(userID, invitationID uint64) error {
	return r.db.
		Where("user_id = ? AND invitation_id = ?", userID, invitationID).
		Delete(&models.Notification{}).Error
}
