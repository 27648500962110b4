package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/teamtasks/teamtasks-api/internal/models"
	"github.com/teamtasks/teamtasks-api/internal/repository"
	"github.com/teamtasks/teamtasks-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type notificationTestEnv struct {
	db      *gorm.DB
	service *NotificationService
}

func setupNotificationTestEnv(t *testing.T) notificationTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Invitation{},
		&models.Notification{},
	)
	require.NoError(t, err)

	service := NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewInvitationRepository(db),
	)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return notificationTestEnv{db: db, service: service}
}

func firstPage() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20, Offset: 0}
}

func TestGetFeed_MaterializesPendingInvitations(t *testing.T) {
	env := setupNotificationTestEnv(t)

	user := &models.User{Username: "@invitee", FirstName: "Test", LastName: "User", Email: "invitee@example.com", PasswordHash: "hashed"}
	require.NoError(t, env.db.Create(user).Error)

	team := &models.Team{AuthorID: 99, Title: "Inviting"}
	require.NoError(t, env.db.Create(team).Error)
	invitation := &models.Invitation{TeamID: team.ID, Email: user.Email, Status: models.InvitationInvited, DateSent: time.Now()}
	require.NoError(t, env.db.Create(invitation).Error)

	notifications, total, err := env.service.GetFeed(user, firstPage())
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, notifications, 1)
	require.True(t, notifications[0].Actionable)
	require.Contains(t, notifications[0].Title, "Inviting")
	require.Equal(t, invitation.ID, *notifications[0].InvitationID)

	// Reading the feed again does not duplicate the notification
	notifications, total, err = env.service.GetFeed(user, firstPage())
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, notifications, 1)
}

func TestGetFeed_IgnoresResolvedInvitations(t *testing.T) {
	env := setupNotificationTestEnv(t)

	user := &models.User{Username: "@invitee", FirstName: "Test", LastName: "User", Email: "invitee@example.com", PasswordHash: "hashed"}
	require.NoError(t, env.db.Create(user).Error)

	team := &models.Team{AuthorID: 99, Title: "Inviting"}
	require.NoError(t, env.db.Create(team).Error)
	require.NoError(t, env.db.Create(&models.Invitation{
		TeamID:   team.ID,
		Email:    user.Email,
		Status:   models.InvitationDeclined,
		DateSent: time.Now(),
	}).Error)

	notifications, total, err := env.service.GetFeed(user, firstPage())
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, notifications)
}

func TestMarkSeen(t *testing.T) {
	env := setupNotificationTestEnv(t)

	notification := &models.Notification{UserID: 1, Title: "Hello"}
	require.NoError(t, env.db.Create(notification).Error)

	seen, err := env.service.MarkSeen(notification.ID, 1)
	require.NoError(t, err)
	require.True(t, seen.Seen)

	var stored models.Notification
	require.NoError(t, env.db.First(&stored, notification.ID).Error)
	require.True(t, stored.Seen)
}

func TestMarkSeen_OtherUsersNotification(t *testing.T) {
	env := setupNotificationTestEnv(t)

	notification := &models.Notification{UserID: 1, Title: "Hello"}
	require.NoError(t, env.db.Create(notification).Error)

	_, err := env.service.MarkSeen(notification.ID, 2)
	require.ErrorIs(t, err, ErrNotificationNotFound)
}
