package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/teamtasks/teamtasks-api/internal/constants"
	"github.com/teamtasks/teamtasks-api/internal/database"
	"github.com/teamtasks/teamtasks-api/internal/models"
	"github.com/teamtasks/teamtasks-api/internal/repository"
	"github.com/teamtasks/teamtasks-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Task{},
		&models.TaskAssignment{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	teamRepo := repository.NewTeamRepository(suite.db)
	suite.handler = NewTaskHandler(services.NewTaskService(taskRepo, teamRepo))

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *TaskHandlerTestSuite) createTestUser(username, lastName string) *models.User {
	user := &models.User{
		Username:     username,
		FirstName:    "Test",
		LastName:     lastName,
		Email:        username[1:] + "@example.com",
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTeam(title string, authorID uint64) *models.Team {
	team := &models.Team{
		Title:    title,
		AuthorID: authorID,
	}
	suite.db.Create(team)
	suite.db.Create(&models.TeamMember{TeamID: team.ID, UserID: authorID, JoinedAt: time.Now()})
	return team
}

func (suite *TaskHandlerTestSuite) createTestMember(teamID, userID uint64) {
	suite.db.Create(&models.TeamMember{TeamID: teamID, UserID: userID, JoinedAt: time.Now()})
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, teamID uint64) *models.Task {
	task := &models.Task{
		TeamID:      teamID,
		Title:       title,
		Description: "Test Description",
		DueDate:     time.Now().Add(24 * time.Hour),
		Points:      1,
	}
	suite.db.Create(task)
	return task
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

// Helper functions to seed the guard-resolved context values
func (suite *TaskHandlerTestSuite) setTeamContext(c *gin.Context, team models.Team) {
	c.Set(constants.ContextKeyTeam, team)
}

func (suite *TaskHandlerTestSuite) setTaskContext(c *gin.Context, task models.Task) {
	c.Set(constants.ContextKeyTask, task)
}

// TestCreateTask_Success tests successful task creation
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("@author", "Author")
	team := suite.createTestTeam("Test Team", user.ID)

	requestBody := map[string]interface{}{
		"title":       "New Task",
		"description": "Task Description",
		"due_date":    time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/teams/1/tasks", body, user.ID)
	suite.setTeamContext(c, *team)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	task := response["task"].(map[string]interface{})
	assert.Equal(suite.T(), "New Task", task["title"])
	assert.Equal(suite.T(), float64(team.ID), task["team_id"])
	// Unspecified points default to 1
	assert.Equal(suite.T(), float64(1), task["points"])
}

// TestCreateTask_PastDueDate tests task creation with a due date in the past
func (suite *TaskHandlerTestSuite) TestCreateTask_PastDueDate() {
	user := suite.createTestUser("@author", "Author")
	team := suite.createTestTeam("Test Team", user.ID)

	requestBody := map[string]interface{}{
		"title":       "Late Task",
		"description": "Task Description",
		"due_date":    time.Now().Add(-48 * time.Hour).Format(time.RFC3339),
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/teams/1/tasks", body, user.ID)
	suite.setTeamContext(c, *team)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "due_date")
}

// TestCreateTask_InvalidRequest tests task creation with missing fields
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidRequest() {
	user := suite.createTestUser("@author", "Author")
	team := suite.createTestTeam("Test Team", user.ID)

	requestBody := map[string]interface{}{
		"title": "No description or due date",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/teams/1/tasks", body, user.ID)
	suite.setTeamContext(c, *team)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateTask_Success tests successful task update
func (suite *TaskHandlerTestSuite) TestUpdateTask_Success() {
	user := suite.createTestUser("@author", "Author")
	team := suite.createTestTeam("Test Team", user.ID)
	task := suite.createTestTask("Old Title", team.ID)

	requestBody := map[string]interface{}{
		"title":       "Updated Title",
		"description": "Updated Description",
		"due_date":    time.Now().Add(72 * time.Hour).Format(time.RFC3339),
		"points":      4,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, user.ID)
	suite.setTaskContext(c, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.Task
	suite.db.First(&updated, task.ID)
	assert.Equal(suite.T(), "Updated Title", updated.Title)
	assert.Equal(suite.T(), "Updated Description", updated.Description)
	assert.Equal(suite.T(), 4, updated.Points)
	// The owning team never changes on update
	assert.Equal(suite.T(), team.ID, updated.TeamID)
}

// TestDeleteTask_Success tests successful task deletion
func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	user := suite.createTestUser("@author", "Author")
	team := suite.createTestTeam("Test Team", user.ID)
	task := suite.createTestTask("Task to Delete", team.ID)
	suite.db.Create(&models.TaskAssignment{TaskID: task.ID, UserID: user.ID})

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, user.ID)
	suite.setTaskContext(c, *task)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Task and its assignments are gone
	var deletedTask models.Task
	err := suite.db.First(&deletedTask, task.ID).Error
	assert.Error(suite.T(), err)

	var assignment models.TaskAssignment
	err = suite.db.Where("task_id = ?", task.ID).First(&assignment).Error
	assert.Error(suite.T(), err)
}

// TestToggleStatus flips completion without touching archival
func (suite *TaskHandlerTestSuite) TestToggleStatus() {
	user := suite.createTestUser("@author", "Author")
	team := suite.createTestTeam("Test Team", user.ID)
	task := suite.createTestTask("Toggle Me", team.ID)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/toggle-status", nil, user.ID)
	suite.setTaskContext(c, *task)

	suite.handler.ToggleStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var toggled models.Task
	suite.db.First(&toggled, task.ID)
	assert.True(suite.T(), toggled.IsComplete)
	assert.False(suite.T(), toggled.IsArchived)

	// Toggling again restores the prior state
	c, w = suite.createAuthContext("POST", "/api/tasks/1/toggle-status", nil, user.ID)
	suite.setTaskContext(c, toggled)

	suite.handler.ToggleStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	suite.db.First(&toggled, task.ID)
	assert.False(suite.T(), toggled.IsComplete)
}

// TestToggleArchive flips archival without touching completion
func (suite *TaskHandlerTestSuite) TestToggleArchive() {
	user := suite.createTestUser("@author", "Author")
	team := suite.createTestTeam("Test Team", user.ID)
	task := suite.createTestTask("Archive Me", team.ID)
	task.IsComplete = true
	suite.db.Save(task)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/toggle-archive", nil, user.ID)
	suite.setTaskContext(c, *task)

	suite.handler.ToggleArchive(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Task archived!", response["message"])

	var toggled models.Task
	suite.db.First(&toggled, task.ID)
	assert.True(suite.T(), toggled.IsArchived)
	assert.True(suite.T(), toggled.IsComplete)
}

// TestToggleAssignment_AddAndRemove tests the assign/unassign round trip
func (suite *TaskHandlerTestSuite) TestToggleAssignment_AddAndRemove() {
	author := suite.createTestUser("@author", "Author")
	member := suite.createTestUser("@member", "Member")
	team := suite.createTestTeam("Test Team", author.ID)
	suite.createTestMember(team.ID, member.ID)
	task := suite.createTestTask("Assign Me", team.ID)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/assignees/2", nil, author.ID)
	c.Params = gin.Params{{Key: "user_id", Value: "2"}}
	suite.setTaskContext(c, *task)

	suite.handler.ToggleAssignment(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Added Test Member", response["message"])
	assert.Equal(suite.T(), true, response["assigned"])

	var assignment models.TaskAssignment
	err = suite.db.Where("task_id = ? AND user_id = ?", task.ID, member.ID).First(&assignment).Error
	assert.NoError(suite.T(), err)

	// Toggling again removes the assignment
	c, w = suite.createAuthContext("POST", "/api/tasks/1/assignees/2", nil, author.ID)
	c.Params = gin.Params{{Key: "user_id", Value: "2"}}
	suite.setTaskContext(c, *task)

	suite.handler.ToggleAssignment(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Removed Test Member", response["message"])

	err = suite.db.Where("task_id = ? AND user_id = ?", task.ID, member.ID).First(&assignment).Error
	assert.Error(suite.T(), err)
}

// TestToggleAssignment_NonMember is a silent no-op for users outside the team
func (suite *TaskHandlerTestSuite) TestToggleAssignment_NonMember() {
	author := suite.createTestUser("@author", "Author")
	outsider := suite.createTestUser("@outsider", "Outsider")
	team := suite.createTestTeam("Test Team", author.ID)
	task := suite.createTestTask("Assign Me", team.ID)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/assignees/2", nil, author.ID)
	c.Params = gin.Params{{Key: "user_id", Value: "2"}}
	suite.setTaskContext(c, *task)

	suite.handler.ToggleAssignment(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "No change", response["message"])

	var count int64
	suite.db.Model(&models.TaskAssignment{}).Where("task_id = ? AND user_id = ?", task.ID, outsider.ID).Count(&count)
	assert.Zero(suite.T(), count)
}

// TestToggleAssignment_ReviveAfterUnassign re-assigns a previously removed user
func (suite *TaskHandlerTestSuite) TestToggleAssignment_ReviveAfterUnassign() {
	author := suite.createTestUser("@author", "Author")
	team := suite.createTestTeam("Test Team", author.ID)
	task := suite.createTestTask("Assign Me", team.ID)

	taskRepo := repository.NewTaskRepository(suite.db)
	suite.Require().NoError(taskRepo.AssignUser(task.ID, author.ID))
	suite.Require().NoError(taskRepo.UnassignUser(task.ID, author.ID))

	// The soft-deleted row is revived rather than duplicated
	suite.Require().NoError(taskRepo.AssignUser(task.ID, author.ID))

	var count int64
	suite.db.Unscoped().Model(&models.TaskAssignment{}).
		Where("task_id = ? AND user_id = ?", task.ID, author.ID).
		Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	_, err := taskRepo.FindAssignment(task.ID, author.ID)
	assert.NoError(suite.T(), err)
}

// TestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
