package projects_interfaces

import (
	projects_models "agencyops/internal/features/projects/models"
	users_dto "agencyops/internal/features/users/dto"
	users_models "agencyops/internal/features/users/models"

	"github.com/google/uuid"
)

// Repositories return (nil, nil) when the record does not exist.

type ProjectRepository interface {
	CreateProject(project *projects_models.Project) error
	GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error)
	GetAllProjects() ([]*projects_models.Project, error)
	GetProjectsByClientID(clientID uuid.UUID) ([]*projects_models.Project, error)
	// UpdateProject writes the named columns only.
	UpdateProject(project *projects_models.Project, columns ...string) error
	UpdateProjectProgress(projectID uuid.UUID, progress int) error
}

type MilestoneRepository interface {
	CreateMilestones(milestones []*projects_models.Milestone) error
	CreateMilestone(milestone *projects_models.Milestone) error
	GetMilestoneByID(milestoneID uuid.UUID) (*projects_models.Milestone, error)
	// GetMilestonesByProjectID returns milestones sorted by order index.
	GetMilestonesByProjectID(projectID uuid.UUID) ([]*projects_models.Milestone, error)
	CountMilestonesByProjectID(projectID uuid.UUID) (int, error)
	UpdateMilestone(milestone *projects_models.Milestone) error
}

type PaymentRepository interface {
	CreatePayment(payment *projects_models.Payment) error
	GetPaymentByProjectID(projectID uuid.UUID) (*projects_models.Payment, error)
	UpdatePayment(payment *projects_models.Payment) error
}

type TeamRepository interface {
	CreateTeamMember(member *projects_models.TeamMember) error
	GetTeamMember(projectID, memberID uuid.UUID) (*projects_models.TeamMember, error)
	GetTeamMembers(projectID uuid.UUID) ([]*projects_models.TeamMember, error)
	DeleteTeamMember(projectID, memberID uuid.UUID) error
}

// ClientDirectory resolves and provisions accounts. Implemented by the users
// feature.
type ClientDirectory interface {
	GetUserByID(userID uuid.UUID) (*users_models.User, error)
	ProvisionClient(request *users_dto.ProvisionClientRequestDTO) (*users_models.User, error)
	EnsureClient(caller *users_models.User) (*users_models.User, error)
}

type ProjectCache interface {
	Get(key string) *projects_models.Project
	Set(key string, project *projects_models.Project)
	Invalidate(key string)
}
