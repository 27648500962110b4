package dto

import (
	"time"

	"github.com/teamtasks/teamtasks-api/internal/models"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID          uint64    `json:"id"`
	AuthorID    uint64    `json:"author_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeamMemberDTO represents a member in a team
type TeamMemberDTO struct {
	User     UserDTO   `json:"user"`
	JoinedAt time.Time `json:"joined_at"`
}

// TeamDetailDTO represents the team detail view: the scoreboard-ordered
// member list and the task list split by archival state.
type TeamDetailDTO struct {
	TeamDTO
	Members    []TeamMemberDTO `json:"members"`
	Unarchived []TaskDTO       `json:"unarchived_tasks"`
	Archived   []TaskDTO       `json:"archived_tasks"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:          team.ID,
		AuthorID:    team.AuthorID,
		Title:       team.Title,
		Description: team.Description,
		CreatedAt:   team.CreatedAt,
	}
}

// ToTeamMemberDTO converts a membership to DTO
func ToTeamMemberDTO(member models.TeamMember) TeamMemberDTO {
	return TeamMemberDTO{
		User:     ToUserDTO(member.User),
		JoinedAt: member.JoinedAt,
	}
}

// ToTeamDetailDTO converts a scoreboard result to the team detail DTO,
// splitting tasks into unarchived and archived.
func ToTeamDetailDTO(team models.Team, members []models.TeamMember, tasks []models.Task) TeamDetailDTO {
	memberDTOs := make([]TeamMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToTeamMemberDTO(member)
	}

	unarchived := make([]TaskDTO, 0, len(tasks))
	archived := make([]TaskDTO, 0)
	for _, task := range tasks {
		if task.IsArchived {
			archived = append(archived, ToTaskDTO(task))
		} else {
			unarchived = append(unarchived, ToTaskDTO(task))
		}
	}

	return TeamDetailDTO{
		TeamDTO:    ToTeamDTO(team),
		Members:    memberDTOs,
		Unarchived: unarchived,
		Archived:   archived,
	}
}
