package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/teamtasks/teamtasks-api/internal/constants"
	"github.com/teamtasks/teamtasks-api/internal/database"
	"github.com/teamtasks/teamtasks-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupGuardTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// guardRouter builds a router that authenticates every request as userID and
// mounts the guarded routes used across the guard tests.
func guardRouter(userID uint64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	})

	ok := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}

	r.GET("/teams/:team_id", RequireTeamMember(TeamFromParam("team_id")), ok)
	r.DELETE("/teams/:team_id", RequireTeamAuthor(TeamFromParam("team_id")), ok)
	r.PUT("/tasks/:task_id", RequireTeamMember(TeamFromTaskParam("task_id")), func(c *gin.Context) {
		task, exists := GetTask(c)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no task"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"task_id": task.ID})
	})
	return r
}

func seedGuardTeam(t *testing.T, db *gorm.DB, authorID uint64, memberIDs ...uint64) *models.Team {
	t.Helper()
	team := &models.Team{AuthorID: authorID, Title: "Guarded"}
	require.NoError(t, db.Create(team).Error)
	for _, id := range memberIDs {
		require.NoError(t, db.Create(&models.TeamMember{TeamID: team.ID, UserID: id, JoinedAt: time.Now()}).Error)
	}
	return team
}

func TestRequireTeamMember_MemberPasses(t *testing.T) {
	db := setupGuardTestDB(t)
	seedGuardTeam(t, db, 1, 1, 2)

	r := guardRouter(2)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teams/1", nil))

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireTeamMember_NonMemberGets404(t *testing.T) {
	db := setupGuardTestDB(t)
	seedGuardTeam(t, db, 1, 1)

	// A non-member must not learn that the team exists
	r := guardRouter(7)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teams/1", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireTeamMember_UnknownTeamGets404(t *testing.T) {
	setupGuardTestDB(t)

	r := guardRouter(1)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teams/42", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireTeamMember_InvalidIDGets400(t *testing.T) {
	setupGuardTestDB(t)

	r := guardRouter(1)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teams/abc", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequireTeamAuthor_AuthorPasses(t *testing.T) {
	db := setupGuardTestDB(t)
	seedGuardTeam(t, db, 1, 1)

	r := guardRouter(1)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/teams/1", nil))

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireTeamAuthor_MemberGets403(t *testing.T) {
	db := setupGuardTestDB(t)
	seedGuardTeam(t, db, 1, 1, 2)

	r := guardRouter(2)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/teams/1", nil))

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "not the creator")
}

func TestRequireTeamAuthor_AuthorWithoutMembershipGets403(t *testing.T) {
	db := setupGuardTestDB(t)
	// Authored but never enrolled; authorship alone is not enough
	seedGuardTeam(t, db, 1)

	r := guardRouter(1)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/teams/1", nil))

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestTeamFromTaskParam_ResolvesOwningTeam(t *testing.T) {
	db := setupGuardTestDB(t)
	team := seedGuardTeam(t, db, 1, 1, 2)
	task := &models.Task{TeamID: team.ID, Title: "Guarded", Description: "d", DueDate: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(task).Error)

	r := guardRouter(2)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/tasks/1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"task_id":1`)
}

func TestTeamFromTaskParam_NonMemberGets404(t *testing.T) {
	db := setupGuardTestDB(t)
	team := seedGuardTeam(t, db, 1, 1)
	task := &models.Task{TeamID: team.ID, Title: "Guarded", Description: "d", DueDate: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(task).Error)

	r := guardRouter(9)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/tasks/1", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTeamFromTaskParam_UnknownTaskGets404(t *testing.T) {
	setupGuardTestDB(t)

	r := guardRouter(1)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/tasks/42", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
}
