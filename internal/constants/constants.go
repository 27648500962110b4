package constants

// Session / context keys
const (
	SessionCookieName = "teamtasks_session"
	ContextKeyUserID  = "user_id"
	ContextKeyTeam    = "team"
	ContextKeyTask    = "task"
)

// Auth
const (
	MinPasswordLength = 8
)

// Field limits
const (
	TitleMaxLength       = 50
	DescriptionMaxLength = 280
)

// Tasks
const (
	DefaultTaskPoints = 1
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
