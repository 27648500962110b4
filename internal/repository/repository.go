package repository

import (
	"time"

	"github.com/teamtasks/teamtasks-api/internal/models"
	"github.com/teamtasks/teamtasks-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// UpdateTotalTasksCompleted persists a recomputed score onto the user row
	UpdateTotalTasksCompleted(userID uint64, total int) error
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// CreateWithAuthorMembership creates a team and enrolls its author as a
	// member within a single transaction.
	CreateWithAuthorMembership(team *models.Team, member *models.TeamMember) error

	// FindByID finds a team by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Team, error)

	// Update updates a team
	Update(team *models.Team) error

	// Delete deletes a team and all owned tasks, assignments, invitations,
	// and memberships in a transaction
	Delete(id uint64) error

	// AddMember adds a member to a team
	AddMember(member *models.TeamMember) error

	// FindMember finds a specific team membership
	FindMember(teamID, userID uint64) (*models.TeamMember, error)

	// ListMembers lists a team's members in the team's default member order
	// (last name, then first name)
	ListMembers(teamID uint64) ([]models.TeamMember, error)

	// ListTeamsByUserID lists teams the user authored or belongs to
	ListTeamsByUserID(userID uint64) ([]models.Team, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByTeam lists a team's tasks ordered by due date
	ListByTeam(teamID uint64) ([]models.Task, error)

	// ListAssignedToUser lists tasks the user is assigned to
	ListAssignedToUser(userID uint64) ([]models.Task, error)

	// ListLateForUser lists the user's assigned tasks whose due date has passed
	ListLateForUser(userID uint64, now time.Time) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task and its assignments
	Delete(id uint64) error

	// AssignUser assigns a user to a task
	AssignUser(taskID, userID uint64) error

	// UnassignUser removes a user's assignment from a task
	UnassignUser(taskID, userID uint64) error

	// FindAssignment finds a specific task assignment
	FindAssignment(taskID, userID uint64) (*models.TaskAssignment, error)
}

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// Create creates a new invitation
	Create(invitation *models.Invitation) error

	// FindByID finds an invitation by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Invitation, error)

	// FindPending finds a pending (invited) invitation for a team and email
	FindPending(teamID uint64, email string) (*models.Invitation, error)

	// ListByEmail lists all invitations addressed to an email
	ListByEmail(email string) ([]models.Invitation, error)

	// ListPendingByEmail lists pending invitations addressed to an email
	ListPendingByEmail(email string) ([]models.Invitation, error)

	// Update updates an invitation
	Update(invitation *models.Invitation) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create creates a new notification
	Create(notification *models.Notification) error

	// FindByID finds a notification by ID
	FindByID(id uint64) (*models.Notification, error)

	// FindByInvitation finds the user's notification tied to an invitation
	FindByInvitation(userID, invitationID uint64) (*models.Notification, error)

	// ListByUser lists a page of a user's notifications, newest first
	ListByUser(userID uint64, params utils.PaginationParams) ([]models.Notification, error)

	// CountByUser counts all of a user's notifications
	CountByUser(userID uint64) (int64, error)

	// CountUnseen counts a user's unseen notifications
	CountUnseen(userID uint64) (int64, error)

	// Update updates a notification
	Update(notification *models.Notification) error

	// DeleteByInvitation removes the user's notification tied to an invitation
	DeleteByInvitation(userID, invitationID uint64) error
}
