package dto

import (
	"time"

	"github.com/teamtasks/teamtasks-api/internal/models"
)

// InvitationDTO represents an invitation in API responses
type InvitationDTO struct {
	ID        uint64                  `json:"id"`
	TeamID    uint64                  `json:"team_id"`
	TeamTitle string                  `json:"team_title,omitempty"`
	Email     string                  `json:"email"`
	Status    models.InvitationStatus `json:"status"`
	DateSent  time.Time               `json:"date_sent"`
}

// ToInvitationDTO converts an Invitation model to InvitationDTO
func ToInvitationDTO(invitation models.Invitation) InvitationDTO {
	return InvitationDTO{
		ID:        invitation.ID,
		TeamID:    invitation.TeamID,
		TeamTitle: invitation.Team.Title,
		Email:     invitation.Email,
		Status:    invitation.Status,
		DateSent:  invitation.DateSent,
	}
}

// ToInvitationDTOs converts a slice of invitations
func ToInvitationDTOs(invitations []models.Invitation) []InvitationDTO {
	dtos := make([]InvitationDTO, len(invitations))
	for i, invitation := range invitations {
		dtos[i] = ToInvitationDTO(invitation)
	}
	return dtos
}
