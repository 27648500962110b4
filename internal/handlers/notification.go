package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamtasks/teamtasks-api/internal/dto"
	apierrors "github.com/teamtasks/teamtasks-api/internal/errors"
	"github.com/teamtasks/teamtasks-api/internal/middleware"
	"github.com/teamtasks/teamtasks-api/internal/services"
	"github.com/teamtasks/teamtasks-api/internal/utils"
)

// NotificationHandler coordinates notification HTTP handlers.
type NotificationHandler struct {
	notificationService *services.NotificationService
	authService         *services.AuthService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService, authService *services.AuthService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		authService:         authService,
	}
}

// ListNotifications returns the current user's feed. Pending invitations
// addressed to the user are materialized into actionable notifications on
// the way, so the feed is always current.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	params := utils.GetPaginationParams(c)

	notifications, total, err := h.notificationService.GetFeed(user, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to load notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": dto.ToNotificationDTOs(notifications),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// MarkSeen marks one of the current user's notifications as seen.
func (h *NotificationHandler) MarkSeen(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	notificationID, err := strconv.ParseUint(c.Param("notification_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification ID")
		return
	}

	notification, err := h.notificationService.MarkSeen(notificationID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			apierrors.NotFound(c, "Notification not found")
			return
		}
		apierrors.InternalError(c, "Failed to update notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Marked as seen",
		"notification": dto.ToNotificationDTO(*notification),
	})
}
