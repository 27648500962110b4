package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teamtasks/teamtasks-api/internal/dto"
	apierrors "github.com/teamtasks/teamtasks-api/internal/errors"
	"github.com/teamtasks/teamtasks-api/internal/middleware"
	"github.com/teamtasks/teamtasks-api/internal/services"
)

// DashboardHandler serves the per-user dashboard aggregate.
type DashboardHandler struct {
	teamService *services.TeamService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(teamService *services.TeamService) *DashboardHandler {
	return &DashboardHandler{
		teamService: teamService,
	}
}

// GetDashboard returns the current user's teams, assigned tasks, late
// tasks, and unseen notification count.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	dashboard, err := h.teamService.GetDashboard(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load dashboard")
		return
	}

	teams := make([]dto.TeamDTO, len(dashboard.Teams))
	for i, team := range dashboard.Teams {
		teams[i] = dto.ToTeamDTO(team)
	}

	c.JSON(http.StatusOK, gin.H{
		"teams":          teams,
		"tasks":          dto.ToTaskDTOs(dashboard.Tasks),
		"late_tasks":     dto.ToTaskDTOs(dashboard.LateTasks),
		"late_task_text": lateTaskText(dashboard),
		"unseen_count":   dashboard.UnseenCount,
	})
}

// lateTaskText summarizes up to ten late task titles into one line.
func lateTaskText(dashboard *services.Dashboard) string {
	late := dashboard.LateTasks
	if len(late) == 0 {
		return ""
	}

	titles := make([]string, 0, 10)
	for i, task := range late {
		if i == 10 {
			break
		}
		titles = append(titles, task.Title)
	}

	text := strings.Join(titles, ", ")
	if len(late) > 10 {
		text += fmt.Sprintf(" and %d more.", len(late)-10)
	}
	return text
}
