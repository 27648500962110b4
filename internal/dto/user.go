package dto

import (
	"github.com/teamtasks/teamtasks-api/internal/models"
	"github.com/teamtasks/teamtasks-api/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                  uint64 `json:"id"`
	Username            string `json:"username"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	FullName            string `json:"full_name"`
	Email               string `json:"email,omitempty"`
	Gravatar            string `json:"gravatar"`
	MiniGravatar        string `json:"mini_gravatar"`
	TotalTasksCompleted int    `json:"total_tasks_completed"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:                  user.ID,
		Username:            user.Username,
		FirstName:           user.FirstName,
		LastName:            user.LastName,
		FullName:            user.FullName(),
		Gravatar:            utils.GravatarURL(user.Email, 120),
		MiniGravatar:        utils.MiniGravatarURL(user.Email),
		TotalTasksCompleted: user.TotalTasksCompleted,
	}
}

// ToOwnUserDTO converts a User model to UserDTO including the email, for
// responses addressed to the user themselves.
func ToOwnUserDTO(user models.User) UserDTO {
	dto := ToUserDTO(user)
	dto.Email = user.Email
	return dto
}
