package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/teamtasks/teamtasks-api/internal/mailer"
	"github.com/teamtasks/teamtasks-api/internal/models"
	"github.com/teamtasks/teamtasks-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvitationNotFound = errors.New("invitation not found")
)

// InvitationService handles the invitation workflow: send by the team
// author, accept/decline by the addressee.
type InvitationService struct {
	invitationRepo   repository.InvitationRepository
	teamRepo         repository.TeamRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	mailer           mailer.Mailer
}

// NewInvitationService creates a new InvitationService.
func NewInvitationService(
	invitationRepo repository.InvitationRepository,
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	m mailer.Mailer,
) *InvitationService {
	return &InvitationService{
		invitationRepo:   invitationRepo,
		teamRepo:         teamRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		mailer:           m,
	}
}

// SendInvitation invites an email address to a team. The email must belong
// to a registered account that is not already a member, and only one pending
// invitation may exist per (team, email) pair. A declined invitation does
// not block a fresh invite.
func (s *InvitationService) SendInvitation(team *models.Team, email string) (*models.Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, FieldErrors{"email": "Email is required"}
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, FieldErrors{"email": "No account is registered with this email"}
		}
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	if _, err := s.teamRepo.FindMember(team.ID, user.ID); err == nil {
		return nil, FieldErrors{"email": "This user is already a member of the team"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	if _, err := s.invitationRepo.FindPending(team.ID, email); err == nil {
		return nil, FieldErrors{"email": "An invitation is already pending for this email"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check pending invitations: %w", err)
	}

	invitation := &models.Invitation{
		TeamID:   team.ID,
		Email:    email,
		Status:   models.InvitationInvited,
		DateSent: time.Now(),
	}
	if err := s.invitationRepo.Create(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	// Fire and forget; domain logic never waits on mail delivery.
	go func(to, teamTitle string) {
		if err := s.mailer.SendInvitation(to, teamTitle); err != nil {
			log.Printf("invitation mail to %s failed: %v", to, err)
		}
	}(email, team.Title)

	return invitation, nil
}

// ListInvitations returns the invitations addressed to the user's email.
func (s *InvitationService) ListInvitations(user *models.User) ([]models.Invitation, error) {
	invitations, err := s.invitationRepo.ListByEmail(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

// AcceptInvitation enrolls the user in the inviting team and marks the
// invitation accepted. The invitation must be addressed to the user's own
// email; a mismatch reads as not-found so invitation existence never leaks.
func (s *InvitationService) AcceptInvitation(invitationID uint64, user *models.User) (*models.Invitation, error) {
	invitation, err := s.findOwnInvitation(invitationID, user)
	if err != nil {
		return nil, err
	}

	if _, err := s.teamRepo.FindMember(invitation.TeamID, user.ID); errors.Is(err, gorm.ErrRecordNotFound) {
		member := &models.TeamMember{
			TeamID:   invitation.TeamID,
			UserID:   user.ID,
			JoinedAt: time.Now(),
		}
		if err := s.teamRepo.AddMember(member); err != nil {
			return nil, fmt.Errorf("failed to add member: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	invitation.Status = models.InvitationAccepted
	if err := s.invitationRepo.Update(invitation); err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}

	if err := s.notificationRepo.DeleteByInvitation(user.ID, invitation.ID); err != nil {
		return nil, fmt.Errorf("failed to remove pending notification: %w", err)
	}

	joined := &models.Notification{
		UserID:      user.ID,
		Title:       "Joined a team",
		Description: fmt.Sprintf("You have joined %s", invitation.Team.Title),
		Actionable:  false,
	}
	if err := s.notificationRepo.Create(joined); err != nil {
		return nil, fmt.Errorf("failed to create joined notification: %w", err)
	}

	// Let the team author know, without blocking the response on delivery.
	if author, err := s.userRepo.FindByID(invitation.Team.AuthorID); err == nil {
		go func(to, teamTitle string) {
			if err := s.mailer.SendInvitationAccepted(to, teamTitle); err != nil {
				log.Printf("acceptance mail to %s failed: %v", to, err)
			}
		}(author.Email, invitation.Team.Title)
	}

	return invitation, nil
}

// DeclineInvitation marks the invitation declined. Declining an already
// declined invitation changes nothing and is reported as such.
func (s *InvitationService) DeclineInvitation(invitationID uint64, user *models.User) (*models.Invitation, bool, error) {
	invitation, err := s.findOwnInvitation(invitationID, user)
	if err != nil {
		return nil, false, err
	}

	if invitation.Status == models.InvitationDeclined {
		return invitation, true, nil
	}

	invitation.Status = models.InvitationDeclined
	if err := s.invitationRepo.Update(invitation); err != nil {
		return nil, false, fmt.Errorf("failed to update invitation: %w", err)
	}

	if err := s.notificationRepo.DeleteByInvitation(user.ID, invitation.ID); err != nil {
		return nil, false, fmt.Errorf("failed to remove pending notification: %w", err)
	}

	return invitation, false, nil
}

func (s *InvitationService) findOwnInvitation(invitationID uint64, user *models.User) (*models.Invitation, error) {
	invitation, err := s.invitationRepo.FindByID(invitationID, "Team")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	if !strings.EqualFold(invitation.Email, user.Email) {
		return nil, ErrInvitationNotFound
	}

	return invitation, nil
}
