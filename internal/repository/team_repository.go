package repository

import (
	"github.com/teamtasks/teamtasks-api/internal/models"
	"gorm.io/gorm"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// CreateWithAuthorMembership creates the team and the author's membership atomically.
func (r *GormTeamRepository) CreateWithAuthorMembership(team *models.Team, member *models.TeamMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		member.TeamID = team.ID
		member.UserID = team.AuthorID

		return tx.Create(member).Error
	})
}

// FindByID finds a team by ID with optional preloading
func (r *GormTeamRepository) FindByID(id uint64, preload ...string) (*models.Team, error) {
	var team models.Team
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&team, id).Error; err != nil {
		return nil, err
	}

	return &team, nil
}

// Update updates a team
func (r *GormTeamRepository) Update(team *models.Team) error {
	return r.db.Save(team).Error
}

// Delete deletes a team and all related data in a transaction
func (r *GormTeamRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Delete assignments of the team's tasks
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("team_id = ?", id)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		// Delete all tasks owned by the team
		if err := tx.Where("team_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		// Delete all invitations owned by the team
		if err := tx.Where("team_id = ?", id).Delete(&models.Invitation{}).Error; err != nil {
			return err
		}

		// Delete all memberships
		if err := tx.Where("team_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}

		// Delete team
		return tx.Delete(&models.Team{}, id).Error
	})
}

// AddMember adds a member to a team
func (r *GormTeamRepository) AddMember(member *models.TeamMember) error {
	return r.db.Create(member).Error
}

// FindMember finds a specific team membership
func (r *GormTeamRepository) FindMember(teamID, userID uint64) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.Preload("User").
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists a team's members ordered by last name, then first name.
// This is the team's default member order and the stable tiebreak for the
// scoreboard ranking.
func (r *GormTeamRepository) ListMembers(teamID uint64) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := r.db.Preload("User").
		Joins("JOIN users ON users.id = team_members.user_id").
		Where("team_members.team_id = ?", teamID).
		Order("users.last_name, users.first_name").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListTeamsByUserID lists teams the user authored or belongs to
func (r *GormTeamRepository) ListTeamsByUserID(userID uint64) ([]models.Team, error) {
	var teams []models.Team
	memberTeamIDs := r.db.Model(&models.TeamMember{}).
		Select("team_id").
		Where("user_id = ?", userID)

	if err := r.db.
		Where("author_id = ? OR id IN (?)", userID, memberTeamIDs).
		Order("created_at DESC").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}
