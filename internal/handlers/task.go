package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teamtasks/teamtasks-api/internal/dto"
	apierrors "github.com/teamtasks/teamtasks-api/internal/errors"
	"github.com/teamtasks/teamtasks-api/internal/middleware"
	"github.com/teamtasks/teamtasks-api/internal/services"
)

// TaskHandler coordinates task HTTP handlers. Every route is behind a team
// guard, so handlers read the resolved team/task from the context.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// TaskRequest is the client-supplied task payload. The owning team comes
// from the guard-resolved route, never from the body.
type TaskRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	Points      int       `json:"points"`
}

// CreateTask creates a task owned by the resolved team.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	team, ok := middleware.GetTeam(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(team.ID, services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Points:      req.Points,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Successfully created task",
		"task":    dto.ToTaskDTO(*task),
	})
}

// UpdateTask edits the resolved task's fields.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(task.ID, services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Points:      req.Points,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task Updated!",
		"task":    dto.ToTaskDTO(*updated),
	})
}

// DeleteTask deletes the resolved task. The route is author-guarded and
// bound to the DELETE method only, so navigational requests cannot trigger it.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted!",
	})
}

// ToggleStatus flips the task's completion flag.
func (h *TaskHandler) ToggleStatus(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	toggled, err := h.taskService.ToggleComplete(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task status changed!",
		"task":    dto.ToTaskDTO(*toggled),
	})
}

// ToggleArchive flips the task's archival flag.
func (h *TaskHandler) ToggleArchive(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	toggled, err := h.taskService.ToggleArchive(task.ID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	message := "Task unarchived!"
	if toggled.IsArchived {
		message = "Task archived!"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"task":    dto.ToTaskDTO(*toggled),
	})
}

// ToggleAssignment assigns the target user to the resolved task, or removes
// them if already assigned. Non-members of the owning team are ignored.
func (h *TaskHandler) ToggleAssignment(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	targetUserID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	result, err := h.taskService.ToggleAssignment(task.ID, targetUserID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	if !result.Changed {
		c.JSON(http.StatusOK, gin.H{
			"message": "No change",
		})
		return
	}

	message := "Removed " + result.User.FullName()
	if result.Assigned {
		message = "Added " + result.User.FullName()
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"assigned": result.Assigned,
	})
}

func respondTaskError(c *gin.Context, err error) {
	var fieldErrs services.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		apierrors.BadRequestWithDetails(c, "Unable to save task", fieldErrs)
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
