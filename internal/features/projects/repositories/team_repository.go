package projects_repositories

import (
	"errors"
	"time"

	projects_models "agencyops/internal/features/projects/models"
	"agencyops/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamRepository struct{}

// CreateTeamMember relies on the (project_id, member_id) unique index.
// A duplicate surfaces as gorm.ErrDuplicatedKey.
func (r *TeamRepository) CreateTeamMember(member *projects_models.TeamMember) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	if member.AssignedAt.IsZero() {
		member.AssignedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(member).Error
}

func (r *TeamRepository) GetTeamMember(projectID, memberID uuid.UUID) (*projects_models.TeamMember, error) {
	var member projects_models.TeamMember

	if err := storage.GetDb().
		Where("project_id = ? AND member_id = ?", projectID, memberID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &member, nil
}

func (r *TeamRepository) GetTeamMembers(projectID uuid.UUID) ([]*projects_models.TeamMember, error) {
	members := make([]*projects_models.TeamMember, 0)

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("assigned_at ASC").
		Find(&members).Error

	return members, err
}

func (r *TeamRepository) DeleteTeamMember(projectID, memberID uuid.UUID) error {
	return storage.GetDb().
		Where("project_id = ? AND member_id = ?", projectID, memberID).
		Delete(&projects_models.TeamMember{}).Error
}
