package repository

import (
	"github.com/teamtasks/teamtasks-api/internal/models"
	"gorm.io/gorm"
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &GormInvitationRepository{db: db}
}

// Create creates a new invitation
func (r *GormInvitationRepository) Create(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

// FindByID finds an invitation by ID with optional preloading
func (r *GormInvitationRepository) FindByID(id uint64, preload ...string) (*models.Invitation, error) {
	var invitation models.Invitation
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&invitation, id).Error; err != nil {
		return nil, err
	}

	return &invitation, nil
}

// FindPending finds a pending (invited) invitation for a team and email
func (r *GormInvitationRepository) FindPending(teamID uint64, email string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.
		Where("team_id = ? AND email = ? AND status = ?", teamID, email, models.InvitationInvited).
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// ListByEmail lists all invitations addressed to an email
func (r *GormInvitationRepository) ListByEmail(email string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := r.db.Preload("Team").
		Where("email = ?", email).
		Order("date_sent DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// ListPendingByEmail lists pending invitations addressed to an email
func (r *GormInvitationRepository) ListPendingByEmail(email string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := r.db.Preload("Team").
		Where("email = ? AND status = ?", email, models.InvitationInvited).
		Order("date_sent DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// Update updates an invitation
func (r *GormInvitationRepository) Update(invitation *models.Invitation) error {
	return r.db.Save(invitation).Error
}
