package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/teamtasks/teamtasks-api/internal/models"
	"github.com/teamtasks/teamtasks-api/internal/repository"
	"gorm.io/gorm"
)

// ScoreService recomputes per-member completed-task point totals for a team.
type ScoreService struct {
	teamRepo repository.TeamRepository
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewScoreService creates a new ScoreService.
func NewScoreService(teamRepo repository.TeamRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository) *ScoreService {
	return &ScoreService{
		teamRepo: teamRepo,
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// Scoreboard holds a team's recomputed ranking together with the team and
// its full task list. Members are sorted by total descending; ties keep the
// team's default member order (last name, first name).
type Scoreboard struct {
	Team    *models.Team
	Members []models.TeamMember
	Tasks   []models.Task
}

// ComputeScoreboard recomputes every member's total from scratch: the sum of
// points over the team's completed tasks the member is assigned to. The
// totals are persisted back onto the user rows, so reading a scoreboard is
// not a read-only operation; running it twice without task changes yields
// the same totals.
func (s *ScoreService) ComputeScoreboard(teamID uint64) (*Scoreboard, error) {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	members, err := s.teamRepo.ListMembers(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	tasks, err := s.taskRepo.ListByTeam(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	totals := make(map[uint64]int, len(members))
	for _, task := range tasks {
		if !task.IsComplete {
			continue
		}
		for _, assignment := range task.Assignments {
			totals[assignment.UserID] += task.Points
		}
	}

	for i := range members {
		total := totals[members[i].UserID]
		if err := s.userRepo.UpdateTotalTasksCompleted(members[i].UserID, total); err != nil {
			return nil, fmt.Errorf("failed to persist score: %w", err)
		}
		members[i].User.TotalTasksCompleted = total
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].User.TotalTasksCompleted > members[j].User.TotalTasksCompleted
	})

	return &Scoreboard{
		Team:    team,
		Members: members,
		Tasks:   tasks,
	}, nil
}
