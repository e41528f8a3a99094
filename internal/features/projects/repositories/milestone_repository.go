package projects_repositories

import (
	"errors"

	projects_models "agencyops/internal/features/projects/models"
	"agencyops/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MilestoneRepository struct{}

func (r *MilestoneRepository) CreateMilestones(milestones []*projects_models.Milestone) error {
	if len(milestones) == 0 {
		return nil
	}

	for _, milestone := range milestones {
		if milestone.ID == uuid.Nil {
			milestone.ID = uuid.New()
		}
	}

	return storage.GetDb().Create(&milestones).Error
}

func (r *MilestoneRepository) CreateMilestone(milestone *projects_models.Milestone) error {
	if milestone.ID == uuid.Nil {
		milestone.ID = uuid.New()
	}

	return storage.GetDb().Create(milestone).Error
}

func (r *MilestoneRepository) GetMilestoneByID(milestoneID uuid.UUID) (*projects_models.Milestone, error) {
	var milestone projects_models.Milestone

	if err := storage.GetDb().Where("id = ?", milestoneID).First(&milestone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &milestone, nil
}

func (r *MilestoneRepository) GetMilestonesByProjectID(projectID uuid.UUID) ([]*projects_models.Milestone, error) {
	milestones := make([]*projects_models.Milestone, 0)

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("order_index ASC").
		Find(&milestones).Error

	return milestones, err
}

func (r *MilestoneRepository) CountMilestonesByProjectID(projectID uuid.UUID) (int, error) {
	var count int64

	err := storage.GetDb().
		Model(&projects_models.Milestone{}).
		Where("project_id = ?", projectID).
		Count(&count).Error

	return int(count), err
}

func (r *MilestoneRepository) UpdateMilestone(milestone *projects_models.Milestone) error {
	return storage.GetDb().Save(milestone).Error
}
