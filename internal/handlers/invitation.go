package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamtasks/teamtasks-api/internal/dto"
	apierrors "github.com/teamtasks/teamtasks-api/internal/errors"
	"github.com/teamtasks/teamtasks-api/internal/middleware"
	"github.com/teamtasks/teamtasks-api/internal/models"
	"github.com/teamtasks/teamtasks-api/internal/services"
)

// InvitationHandler coordinates invitation HTTP handlers.
type InvitationHandler struct {
	invitationService *services.InvitationService
	authService       *services.AuthService
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(invitationService *services.InvitationService, authService *services.AuthService) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
		authService:       authService,
	}
}

// SendInvitation invites an email address to the resolved team. The route
// is author-guarded; members cannot invite.
func (h *InvitationHandler) SendInvitation(c *gin.Context) {
	team, ok := middleware.GetTeam(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	type InviteRequest struct {
		Email string `json:"email" binding:"required"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invitation, err := h.invitationService.SendInvitation(&team, req.Email)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Invitation sent successfully.",
		"invitation": dto.ToInvitationDTO(*invitation),
	})
}

// ListInvitations returns the invitations addressed to the current user.
func (h *InvitationHandler) ListInvitations(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	invitations, err := h.invitationService.ListInvitations(user)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invitations": dto.ToInvitationDTOs(invitations),
	})
}

// AcceptInvitation joins the current user to the inviting team.
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	invitationID, err := strconv.ParseUint(c.Param("invitation_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid invitation ID")
		return
	}

	invitation, err := h.invitationService.AcceptInvitation(invitationID, user)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "You have joined the team!",
		"invitation": dto.ToInvitationDTO(*invitation),
	})
}

// DeclineInvitation declines the invitation. Repeated declines change
// nothing and report an informational message.
func (h *InvitationHandler) DeclineInvitation(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	invitationID, err := strconv.ParseUint(c.Param("invitation_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid invitation ID")
		return
	}

	invitation, alreadyDeclined, err := h.invitationService.DeclineInvitation(invitationID, user)
	if err != nil {
		respondInvitationError(c, err)
		return
	}

	message := "You have declined the invitation."
	if alreadyDeclined {
		message = "You have already declined this invitation."
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    message,
		"invitation": dto.ToInvitationDTO(*invitation),
	})
}

func (h *InvitationHandler) currentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return nil, false
	}

	return user, true
}

func respondInvitationError(c *gin.Context, err error) {
	var fieldErrs services.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		apierrors.ConflictWithDetails(c, "Unable to send invitation", fieldErrs)
	case errors.Is(err, services.ErrInvitationNotFound):
		apierrors.NotFound(c, "Invitation not found")
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, "Team not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
