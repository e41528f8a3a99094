package projects_repositories

import (
	"errors"
	"time"

	projects_models "agencyops/internal/features/projects/models"
	"agencyops/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(project *projects_models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	if project.UpdatedAt.IsZero() {
		project.UpdatedAt = project.CreatedAt
	}

	return storage.GetDb().Create(project).Error
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	if err := storage.GetDb().Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &project, nil
}

func (r *ProjectRepository) GetAllProjects() ([]*projects_models.Project, error) {
	var projects []*projects_models.Project

	err := storage.GetDb().Order("created_at DESC").Find(&projects).Error

	return projects, err
}

func (r *ProjectRepository) GetProjectsByClientID(clientID uuid.UUID) ([]*projects_models.Project, error) {
	var projects []*projects_models.Project

	err := storage.GetDb().
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&projects).Error

	return projects, err
}

// UpdateProject writes only the named columns, so concurrent writers of other
// fields are not overwritten with the values read earlier.
func (r *ProjectRepository) UpdateProject(project *projects_models.Project, columns ...string) error {
	if len(columns) == 0 {
		return errors.New("no project columns to update")
	}

	return storage.GetDb().Model(project).Select(columns).Updates(project).Error
}

func (r *ProjectRepository) UpdateProjectProgress(projectID uuid.UUID, progress int) error {
	return storage.GetDb().
		Model(&projects_models.Project{}).
		Where("id = ?", projectID).
		UpdateColumns(map[string]any{
			"progress":   progress,
			"updated_at": time.Now().UTC(),
		}).Error
}
