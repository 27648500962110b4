package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teamtasks/teamtasks-api/internal/constants"
	"github.com/teamtasks/teamtasks-api/internal/models"
	"github.com/teamtasks/teamtasks-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTeamNotFound = errors.New("team not found")
)

// TeamService handles team business logic.
type TeamService struct {
	teamRepo         repository.TeamRepository
	taskRepo         repository.TaskRepository
	notificationRepo repository.NotificationRepository
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository, taskRepo repository.TaskRepository, notificationRepo repository.NotificationRepository) *TeamService {
	return &TeamService{
		teamRepo:         teamRepo,
		taskRepo:         taskRepo,
		notificationRepo: notificationRepo,
	}
}

// TeamInput holds the editable team fields.
type TeamInput struct {
	Title       string
	Description string
}

// ValidateTeamInput checks team fields; the description may be blank.
func ValidateTeamInput(input TeamInput) FieldErrors {
	errs := FieldErrors{}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		errs["title"] = "Title is required"
	} else if len(title) > constants.TitleMaxLength {
		errs["title"] = fmt.Sprintf("Title must be at most %d characters", constants.TitleMaxLength)
	}
	if len(input.Description) > constants.DescriptionMaxLength {
		errs["description"] = fmt.Sprintf("Description must be at most %d characters", constants.DescriptionMaxLength)
	}
	return errs
}

// CreateTeam creates a team, enrolls the author as a member, and records a
// "new team" notification for the author.
func (s *TeamService) CreateTeam(authorID uint64, input TeamInput) (*models.Team, error) {
	if err := ValidateTeamInput(input).ErrorOrNil(); err != nil {
		return nil, err
	}

	team := &models.Team{
		AuthorID:    authorID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
	}
	member := &models.TeamMember{
		JoinedAt: time.Now(),
	}

	if err := s.teamRepo.CreateWithAuthorMembership(team, member); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	notification := &models.Notification{
		UserID:      authorID,
		Title:       "New Team Created: " + team.Title,
		Description: "You have created a new team",
		Actionable:  false,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to create team notification: %w", err)
	}

	return team, nil
}

// GetTeam returns a team by ID.
func (s *TeamService) GetTeam(teamID uint64) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}

// UpdateTeam updates the team's title and description. The author is
// immutable after creation.
func (s *TeamService) UpdateTeam(teamID uint64, input TeamInput) (*models.Team, error) {
	if err := ValidateTeamInput(input).ErrorOrNil(); err != nil {
		return nil, err
	}

	team, err := s.GetTeam(teamID)
	if err != nil {
		return nil, err
	}

	team.Title = strings.TrimSpace(input.Title)
	team.Description = input.Description

	if err := s.teamRepo.Update(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

// DeleteTeam deletes a team together with its tasks and invitations.
func (s *TeamService) DeleteTeam(teamID uint64) error {
	if _, err := s.GetTeam(teamID); err != nil {
		return err
	}

	if err := s.teamRepo.Delete(teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return nil
}

// Dashboard aggregates the data shown on a user's dashboard.
type Dashboard struct {
	Teams       []models.Team
	Tasks       []models.Task
	LateTasks   []models.Task
	UnseenCount int64
}

// GetDashboard returns the user's teams, assigned tasks, late tasks, and
// unseen notification count.
func (s *TeamService) GetDashboard(userID uint64) (*Dashboard, error) {
	teams, err := s.teamRepo.ListTeamsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	tasks, err := s.taskRepo.ListAssignedToUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}

	lateTasks, err := s.taskRepo.ListLateForUser(userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list late tasks: %w", err)
	}

	unseen, err := s.notificationRepo.CountUnseen(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unseen notifications: %w", err)
	}

	return &Dashboard{
		Teams:       teams,
		Tasks:       tasks,
		LateTasks:   lateTasks,
		UnseenCount: unseen,
	}, nil
}
