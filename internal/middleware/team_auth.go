package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamtasks/teamtasks-api/internal/constants"
	"github.com/teamtasks/teamtasks-api/internal/database"
	apierrors "github.com/teamtasks/teamtasks-api/internal/errors"
	"github.com/teamtasks/teamtasks-api/internal/models"
	"gorm.io/gorm"
)

// TeamResolver locates the team an operation targets, either directly from
// a team id route parameter or indirectly through a task's owning team. On
// failure it writes the error response, aborts, and returns nil. Resolution
// failure is always a 404; there are no silent fallbacks.
type TeamResolver func(c *gin.Context) *models.Team

// TeamFromParam resolves the team from a route parameter holding a team ID.
func TeamFromParam(param string) TeamResolver {
	return func(c *gin.Context) *models.Team {
		teamID, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid team ID")
			c.Abort()
			return nil
		}

		var team models.Team
		if err := database.GetDB().First(&team, teamID).Error; err != nil {
			apierrors.NotFound(c, "Team not found")
			c.Abort()
			return nil
		}

		return &team
	}
}

// TeamFromTaskParam resolves the team owning the task named by a route
// parameter. The resolved task is stored in the context for the handler.
func TeamFromTaskParam(param string) TeamResolver {
	return func(c *gin.Context) *models.Team {
		taskID, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return nil
		}

		var task models.Task
		if err := database.GetDB().
			Preload("Assignments").
			Preload("Assignments.User").
			First(&task, taskID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return nil
		}

		var team models.Team
		if err := database.GetDB().First(&team, task.TeamID).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return nil
		}

		c.Set(constants.ContextKeyTask, task)
		return &team
	}
}

// RequireTeamMember passes only when the actor belongs to the resolved
// team's member set or is its author. Failures respond 404 rather than 403
// so non-members cannot probe team existence. The guard runs before the
// handler and has no side effects on failure.
func RequireTeamMember(resolve TeamResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		team := resolve(c)
		if team == nil {
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !isTeamMember(team, userID) {
			apierrors.NotFound(c, "Team not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTeam, *team)
		c.Next()
	}
}

// RequireTeamAuthor passes only when the actor is the team's author AND
// still enrolled in its member set; authorship alone is not enough.
func RequireTeamAuthor(resolve TeamResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		team := resolve(c)
		if team == nil {
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if team.AuthorID != userID || !hasMembership(team.ID, userID) {
			apierrors.Forbidden(c, "You cannot perform this action because you are not the creator of the team")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTeam, *team)
		c.Next()
	}
}

// isTeamMember reports whether the user is in the member set or is the author.
func isTeamMember(team *models.Team, userID uint64) bool {
	if team.AuthorID == userID {
		return true
	}
	return hasMembership(team.ID, userID)
}

func hasMembership(teamID, userID uint64) bool {
	var member models.TeamMember
	err := database.GetDB().
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error
	return !errors.Is(err, gorm.ErrRecordNotFound) && err == nil
}

// GetTeam retrieves the guard-resolved team from the context.
func GetTeam(c *gin.Context) (models.Team, bool) {
	teamInterface, exists := c.Get(constants.ContextKeyTeam)
	if !exists {
		return models.Team{}, false
	}
	team, ok := teamInterface.(models.Team)
	return team, ok
}

// GetTask retrieves the guard-resolved task from the context.
func GetTask(c *gin.Context) (models.Task, bool) {
	taskInterface, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}
	task, ok := taskInterface.(models.Task)
	return task, ok
}
