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
	ErrTaskNotFound = errors.New("task not found")
)

// TaskService handles task lifecycle business logic. Authorization is
// enforced by the route guards before any of these methods run.
type TaskService struct {
	taskRepo repository.TaskRepository
	teamRepo repository.TeamRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, teamRepo repository.TeamRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		teamRepo: teamRepo,
	}
}

// TaskInput holds the client-editable task fields. The owning team is never
// part of it; it is bound from the guard-resolved team.
type TaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Points      int
}

// ValidateTaskInput checks task fields against a reference time and returns
// field-level errors. The due date may not be in the past.
func ValidateTaskInput(input TaskInput, now time.Time) FieldErrors {
	errs := FieldErrors{}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		errs["title"] = "Title is required"
	} else if len(title) > constants.TitleMaxLength {
		errs["title"] = fmt.Sprintf("Title must be at most %d characters", constants.TitleMaxLength)
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		errs["description"] = "Description is required"
	} else if len(input.Description) > constants.DescriptionMaxLength {
		errs["description"] = fmt.Sprintf("Description must be at most %d characters", constants.DescriptionMaxLength)
	}
	if input.DueDate.IsZero() {
		errs["due_date"] = "Due date is required"
	} else if input.DueDate.Before(now) {
		errs["due_date"] = "Due date cannot be in the past"
	}
	if input.Points < 0 {
		errs["points"] = "Points cannot be negative"
	}
	return errs
}

// CreateTask creates a task owned by the given team.
func (s *TaskService) CreateTask(teamID uint64, input TaskInput) (*models.Task, error) {
	if err := ValidateTaskInput(input, time.Now()).ErrorOrNil(); err != nil {
		return nil, err
	}

	points := input.Points
	if points == 0 {
		points = constants.DefaultTaskPoints
	}

	task := &models.Task{
		TeamID:      teamID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		DueDate:     input.DueDate,
		Points:      points,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask updates a task's editable fields. The owning team is immutable.
func (s *TaskService) UpdateTask(taskID uint64, input TaskInput) (*models.Task, error) {
	if err := ValidateTaskInput(input, time.Now()).ErrorOrNil(); err != nil {
		return nil, err
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(input.Title)
	task.Description = input.Description
	task.DueDate = input.DueDate
	if input.Points != 0 {
		task.Points = input.Points
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task and its assignments.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.findTask(taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ToggleComplete flips the completion flag. Archival state is untouched.
func (s *TaskService) ToggleComplete(taskID uint64) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	task.IsComplete = !task.IsComplete
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to toggle task status: %w", err)
	}

	return task, nil
}

// ToggleArchive flips the archival flag. Completion state is untouched.
func (s *TaskService) ToggleArchive(taskID uint64) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	task.IsArchived = !task.IsArchived
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to toggle task archive: %w", err)
	}

	return task, nil
}

// AssignmentResult reports the outcome of a ToggleAssignment call.
type AssignmentResult struct {
	// Changed is false when the target user is not a member of the owning
	// team; the operation is then a silent no-op.
	Changed  bool
	Assigned bool
	User     *models.User
}

// ToggleAssignment adds the target user to the task's assignment set, or
// removes them if already assigned. Users outside the owning team's member
// set are ignored without error.
func (s *TaskService) ToggleAssignment(taskID, targetUserID uint64) (*AssignmentResult, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	member, err := s.teamRepo.FindMember(task.TeamID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &AssignmentResult{Changed: false}, nil
		}
		return nil, fmt.Errorf("failed to verify team membership: %w", err)
	}

	_, err = s.taskRepo.FindAssignment(taskID, targetUserID)
	switch {
	case err == nil:
		if err := s.taskRepo.UnassignUser(taskID, targetUserID); err != nil {
			return nil, fmt.Errorf("failed to unassign user: %w", err)
		}
		return &AssignmentResult{Changed: true, Assigned: false, User: &member.User}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.taskRepo.AssignUser(taskID, targetUserID); err != nil {
			return nil, fmt.Errorf("failed to assign user: %w", err)
		}
		return &AssignmentResult{Changed: true, Assigned: true, User: &member.User}, nil
	default:
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}
}

func (s *TaskService) findTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}
