package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamtasks/teamtasks-api/internal/dto"
	apierrors "github.com/teamtasks/teamtasks-api/internal/errors"
	"github.com/teamtasks/teamtasks-api/internal/middleware"
	"github.com/teamtasks/teamtasks-api/internal/services"
)

// TeamHandler coordinates team HTTP handlers.
type TeamHandler struct {
	teamService  *services.TeamService
	scoreService *services.ScoreService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService, scoreService *services.ScoreService) *TeamHandler {
	return &TeamHandler{
		teamService:  teamService,
		scoreService: scoreService,
	}
}

// CreateTeam creates a new team authored by the current user.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTeamRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(userID, services.TeamInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Created Team: " + team.Title + "!",
		"team":    dto.ToTeamDTO(*team),
	})
}

// GetTeam returns the team detail view. Reading it recomputes and persists
// every member's completed-task score, so the member list doubles as the
// leaderboard.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	team, ok := middleware.GetTeam(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	scoreboard, err := h.scoreService.ComputeScoreboard(team.ID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDetailDTO(*scoreboard.Team, scoreboard.Members, scoreboard.Tasks))
}

// GetLeaderboard recomputes the team scoreboard and returns the ranked
// member list on its own.
func (h *TeamHandler) GetLeaderboard(c *gin.Context) {
	team, ok := middleware.GetTeam(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	scoreboard, err := h.scoreService.ComputeScoreboard(team.ID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	members := make([]dto.TeamMemberDTO, len(scoreboard.Members))
	for i, member := range scoreboard.Members {
		members[i] = dto.ToTeamMemberDTO(member)
	}

	c.JSON(http.StatusOK, gin.H{
		"team":    dto.ToTeamDTO(*scoreboard.Team),
		"members": members,
	})
}

// UpdateTeam updates the team's title and description.
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	team, ok := middleware.GetTeam(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	type UpdateTeamRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.teamService.UpdateTeam(team.ID, services.TeamInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Team updated!",
		"team":    dto.ToTeamDTO(*updated),
	})
}

// DeleteTeam deletes the team and everything it owns.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	team, ok := middleware.GetTeam(c)
	if !ok {
		apierrors.InternalError(c, "Team not found in context")
		return
	}

	if err := h.teamService.DeleteTeam(team.ID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Team deleted!",
	})
}

func respondTeamError(c *gin.Context, err error) {
	var fieldErrs services.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		apierrors.BadRequestWithDetails(c, "Unable to save team", fieldErrs)
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, "Team not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
