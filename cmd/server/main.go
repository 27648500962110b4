package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/teamtasks/teamtasks-api/internal/config"
	"github.com/teamtasks/teamtasks-api/internal/constants"
	"github.com/teamtasks/teamtasks-api/internal/database"
	"github.com/teamtasks/teamtasks-api/internal/handlers"
	"github.com/teamtasks/teamtasks-api/internal/mailer"
	"github.com/teamtasks/teamtasks-api/internal/middleware"
	"github.com/teamtasks/teamtasks-api/internal/repository"
	"github.com/teamtasks/teamtasks-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Printf("Failed to add indexes: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize services
	smtpMailer := mailer.NewSMTPMailer(cfg)
	authService := services.NewAuthService(userRepo)
	teamService := services.NewTeamService(teamRepo, taskRepo, notificationRepo)
	taskService := services.NewTaskService(taskRepo, teamRepo)
	scoreService := services.NewScoreService(teamRepo, taskRepo, userRepo)
	invitationService := services.NewInvitationService(invitationRepo, teamRepo, userRepo, notificationRepo, smtpMailer)
	notificationService := services.NewNotificationService(notificationRepo, invitationRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	teamHandler := handlers.NewTeamHandler(teamService, scoreService)
	taskHandler := handlers.NewTaskHandler(taskService)
	invitationHandler := handlers.NewInvitationHandler(invitationService, authService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, authService)
	dashboardHandler := handlers.NewDashboardHandler(teamService)

	// Team guards: routes under /teams/:team_id resolve the team from the
	// path, routes under /tasks/:task_id resolve it through the task.
	memberOfTeam := middleware.RequireTeamMember(middleware.TeamFromParam("team_id"))
	authorOfTeam := middleware.RequireTeamAuthor(middleware.TeamFromParam("team_id"))
	memberOfTaskTeam := middleware.RequireTeamMember(middleware.TeamFromTaskParam("task_id"))
	authorOfTaskTeam := middleware.RequireTeamAuthor(middleware.TeamFromTaskParam("task_id"))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "TeamTasks API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.PUT("/me", middleware.RequireAuth(), authHandler.UpdateProfile)
			auth.PUT("/me/password", middleware.RequireAuth(), authHandler.ChangePassword)
		}

		// Dashboard (protected)
		api.GET("/dashboard", middleware.RequireAuth(), dashboardHandler.GetDashboard)

		// Team routes (protected)
		teams := api.Group("/teams")
		teams.Use(middleware.RequireAuth())
		{
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("/:team_id", memberOfTeam, teamHandler.GetTeam)
			teams.GET("/:team_id/leaderboard", memberOfTeam, teamHandler.GetLeaderboard)
			teams.PUT("/:team_id", authorOfTeam, teamHandler.UpdateTeam)
			teams.DELETE("/:team_id", authorOfTeam, teamHandler.DeleteTeam)
			teams.POST("/:team_id/tasks", memberOfTeam, taskHandler.CreateTask)
			teams.POST("/:team_id/invitations", authorOfTeam, invitationHandler.SendInvitation)
		}

		// Task routes (protected); the owning team is resolved from the task
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.PATCH("/:task_id", memberOfTaskTeam, taskHandler.UpdateTask)
			tasks.DELETE("/:task_id", authorOfTaskTeam, taskHandler.DeleteTask)
			tasks.POST("/:task_id/toggle-status", memberOfTaskTeam, taskHandler.ToggleStatus)
			tasks.POST("/:task_id/toggle-archive", memberOfTaskTeam, taskHandler.ToggleArchive)
			tasks.POST("/:task_id/assignees/:user_id", memberOfTaskTeam, taskHandler.ToggleAssignment)
		}

		// Invitation routes (protected, addressee-scoped)
		invitations := api.Group("/invitations")
		invitations.Use(middleware.RequireAuth())
		{
			invitations.GET("", invitationHandler.ListInvitations)
			invitations.POST("/:invitation_id/accept", invitationHandler.AcceptInvitation)
			invitations.POST("/:invitation_id/decline", invitationHandler.DeclineInvitation)
		}

		// Notification routes (protected, owner-scoped)
		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireAuth())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("/:notification_id/seen", notificationHandler.MarkSeen)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
