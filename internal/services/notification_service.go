package services

import (
	"errors"
	"fmt"

	"github.com/teamtasks/teamtasks-api/internal/models"
	"github.com/teamtasks/teamtasks-api/internal/repository"
	"github.com/teamtasks/teamtasks-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationService materializes and serves a user's notification feed.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	invitationRepo   repository.InvitationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository, invitationRepo repository.InvitationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		invitationRepo:   invitationRepo,
	}
}

// GetFeed returns a page of the user's notifications plus the total count,
// first materializing one actionable notification per pending invitation
// addressed to them. The materialization is idempotent: an invitation that
// already has a notification is skipped.
func (s *NotificationService) GetFeed(user *models.User, params utils.PaginationParams) ([]models.Notification, int64, error) {
	pending, err := s.invitationRepo.ListPendingByEmail(user.Email)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pending invitations: %w", err)
	}

	for i := range pending {
		invitation := &pending[i]
		_, err := s.notificationRepo.FindByInvitation(user.ID, invitation.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, fmt.Errorf("failed to check invitation notification: %w", err)
		}

		notification := &models.Notification{
			UserID:       user.ID,
			Title:        fmt.Sprintf("Invitation to join %s", invitation.Team.Title),
			Actionable:   true,
			InvitationID: &invitation.ID,
		}
		if err := s.notificationRepo.Create(notification); err != nil {
			return nil, 0, fmt.Errorf("failed to create invitation notification: %w", err)
		}
	}

	total, err := s.notificationRepo.CountByUser(user.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	notifications, err := s.notificationRepo.ListByUser(user.ID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

// MarkSeen marks the user's own notification as seen. Another user's
// notification reads as not-found.
func (s *NotificationService) MarkSeen(notificationID, userID uint64) (*models.Notification, error) {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	if notification.UserID != userID {
		return nil, ErrNotificationNotFound
	}

	notification.Seen = true
	if err := s.notificationRepo.Update(notification); err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}

	return notification, nil
}
