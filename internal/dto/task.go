package dto

import (
	"time"

	"github.com/teamtasks/teamtasks-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64    `json:"id"`
	TeamID      uint64    `json:"team_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	IsComplete  bool      `json:"is_complete"`
	IsArchived  bool      `json:"is_archived"`
	Points      int       `json:"points"`
	CreatedAt   time.Time `json:"created_at"`
	Assignees   []UserDTO `json:"assignees,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		TeamID:      task.TeamID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		IsComplete:  task.IsComplete,
		IsArchived:  task.IsArchived,
		Points:      task.Points,
		CreatedAt:   task.CreatedAt,
	}

	// Include assignees if preloaded
	if len(task.Assignments) > 0 {
		dto.Assignees = make([]UserDTO, len(task.Assignments))
		for i, assignment := range task.Assignments {
			dto.Assignees[i] = ToUserDTO(assignment.User)
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
