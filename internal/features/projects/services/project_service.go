package projects_services

import (
	"log/slog"
	"strings"
	"time"

	projects_dto "agencyops/internal/features/projects/dto"
	projects_enums "agencyops/internal/features/projects/enums"
	projects_interfaces "agencyops/internal/features/projects/interfaces"
	projects_models "agencyops/internal/features/projects/models"
	projects_progress "agencyops/internal/features/projects/progress"
	users_models "agencyops/internal/features/users/models"
	errors_utils "agencyops/internal/util/errors"
	"agencyops/internal/util/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type ProjectService struct {
	projectRepository   projects_interfaces.ProjectRepository
	milestoneRepository projects_interfaces.MilestoneRepository
	paymentService      *PaymentService
	clientDirectory     projects_interfaces.ClientDirectory
	eventHub            *ProjectEventHub
	logger              *slog.Logger

	projectCache projects_interfaces.ProjectCache
	singleflight singleflight.Group // Prevents thundering herd on DB calls
}

func NewProjectService(
	projectRepository projects_interfaces.ProjectRepository,
	milestoneRepository projects_interfaces.MilestoneRepository,
	paymentService *PaymentService,
	clientDirectory projects_interfaces.ClientDirectory,
	eventHub *ProjectEventHub,
	projectCache projects_interfaces.ProjectCache,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepository:   projectRepository,
		milestoneRepository: milestoneRepository,
		paymentService:      paymentService,
		clientDirectory:     clientDirectory,
		eventHub:            eventHub,
		projectCache:        projectCache,
		logger:              logger,
	}
}

func (s *ProjectService) CreateProject(
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_models.Project, error) {
	if err := validateCreateProjectRequest(request); err != nil {
		return nil, err
	}

	clientID, err := s.resolveClientForNewProject(request, creator)
	if err != nil {
		return nil, err
	}

	priority := request.Priority
	if priority == "" {
		priority = projects_enums.ProjectPriorityMedium
	}

	now := time.Now().UTC()
	project := &projects_models.Project{
		ID:             uuid.New(),
		Title:          strings.TrimSpace(request.Title),
		Description:    strings.TrimSpace(request.Description),
		Requirements:   projects_models.CleanRequirements(request.Requirements),
		Category:       strings.TrimSpace(request.Category),
		ServiceType:    strings.TrimSpace(request.ServiceType),
		Priority:       priority,
		Status:         projects_enums.ProjectStatusPending,
		Budget:         request.Budget,
		Deadline:       request.Deadline,
		ClientID:       clientID,
		AttachmentPath: request.AttachmentPath,
		CreatedBy:      creator.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if clientID != nil {
		project.AssignedAt = &now
	}

	if err := s.projectRepository.CreateProject(project); err != nil {
		return nil, errors_utils.NewDependencyError("create project", err)
	}

	milestones := projects_models.NewDefaultMilestones(project.ID, now)
	if err := s.milestoneRepository.CreateMilestones(milestones); err != nil {
		return nil, errors_utils.NewDependencyError("seed default milestones", err)
	}

	totalAmount := 0.0
	if project.Budget != nil {
		totalAmount = *project.Budget
	}

	if _, err := s.paymentService.InitializePayment(project.ID, totalAmount); err != nil {
		return nil, err
	}

	// Pre-warm cache with new project for immediate availability
	s.projectCache.Set(project.ID.String(), project)

	metrics.RecordProjectCreated(string(creator.Role))
	s.logger.Info("project created", "projectId", project.ID, "createdBy", creator.ID)

	s.eventHub.Publish(projects_interfaces.ProjectEvent{
		Type:    projects_interfaces.ProjectEventCreated,
		Project: project,
	})

	return project, nil
}

func (s *ProjectService) ChangeStatus(
	projectID uuid.UUID,
	newStatus projects_enums.ProjectStatus,
) (*projects_models.Project, error) {
	if !newStatus.IsValid() {
		return nil, errors_utils.NewValidationError(
			errors_utils.CodeInvalidValue, "status", "unknown project status: "+string(newStatus),
		)
	}

	project, err := s.getProjectForUpdate(projectID)
	if err != nil {
		return nil, err
	}

	previousStatus := project.Status
	if !projects_enums.IsStatusTransitionAllowed(previousStatus, newStatus) {
		return nil, errors_utils.NewValidationError(
			errors_utils.CodeInvalidValue,
			"status",
			"project cannot move from "+string(previousStatus)+" to "+string(newStatus),
		)
	}

	if previousStatus == newStatus {
		return project, nil
	}

	project.Status = newStatus
	project.UpdatedAt = time.Now().UTC()

	if err := s.projectRepository.UpdateProject(project, "status", "updated_at"); err != nil {
		return nil, errors_utils.NewDependencyError("update project status", err)
	}

	s.projectCache.Invalidate(projectID.String())
	metrics.RecordStatusTransition(string(previousStatus), string(newStatus))

	s.eventHub.Publish(projects_interfaces.ProjectEvent{
		Type:           projects_interfaces.ProjectEventStatusChanged,
		Project:        project,
		PreviousStatus: previousStatus,
	})

	return project, nil
}

func (s *ProjectService) ChangePriority(
	projectID uuid.UUID,
	newPriority projects_enums.ProjectPriority,
) (*projects_models.Project, error) {
	if !newPriority.IsValid() {
		return nil, errors_utils.NewValidationError(
			errors_utils.CodeInvalidValue, "priority", "unknown project priority: "+string(newPriority),
		)
	}

	project, err := s.getProjectForUpdate(projectID)
	if err != nil {
		return nil, err
	}

	project.Priority = newPriority
	project.UpdatedAt = time.Now().UTC()

	if err := s.projectRepository.UpdateProject(project, "priority", "updated_at"); err != nil {
		return nil, errors_utils.NewDependencyError("update project priority", err)
	}

	s.projectCache.Invalidate(projectID.String())

	return project, nil
}

// AssignClient sets or replaces the client of a project.
func (s *ProjectService) AssignClient(projectID, clientID uuid.UUID) (*projects_models.Project, error) {
	project, err := s.getProjectForUpdate(projectID)
	if err != nil {
		return nil, err
	}

	if _, err := s.resolveExistingClient(clientID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project.ClientID = &clientID
	project.AssignedAt = &now
	project.UpdatedAt = now

	if err := s.projectRepository.UpdateProject(project, "client_id", "assigned_at", "updated_at"); err != nil {
		return nil, errors_utils.NewDependencyError("assign client", err)
	}

	s.projectCache.Invalidate(projectID.String())

	s.eventHub.Publish(projects_interfaces.ProjectEvent{
		Type:    projects_interfaces.ProjectEventClientAssigned,
		Project: project,
	})

	return project, nil
}

// UpdateDetails edits title, description, requirements, budget and deadline.
// Status, priority and client are left untouched.
func (s *ProjectService) UpdateDetails(
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectDetailsRequestDTO,
) (*projects_models.Project, error) {
	if err := validateUpdateDetailsRequest(request); err != nil {
		return nil, err
	}

	project, err := s.getProjectForUpdate(projectID)
	if err != nil {
		return nil, err
	}

	columns := []string{"updated_at"}

	if request.Title != nil {
		project.Title = strings.TrimSpace(*request.Title)
		columns = append(columns, "title")
	}
	if request.Description != nil {
		project.Description = strings.TrimSpace(*request.Description)
		columns = append(columns, "description")
	}
	if request.Requirements != nil {
		project.Requirements = projects_models.CleanRequirements(*request.Requirements)
		columns = append(columns, "requirements_raw")
	}
	if request.Budget != nil {
		budget := *request.Budget
		project.Budget = &budget
		columns = append(columns, "budget")
	}
	if request.Deadline != nil {
		deadline := *request.Deadline
		project.Deadline = &deadline
		columns = append(columns, "deadline")
	}

	project.UpdatedAt = time.Now().UTC()

	if err := s.projectRepository.UpdateProject(project, columns...); err != nil {
		return nil, errors_utils.NewDependencyError("update project details", err)
	}

	s.projectCache.Invalidate(projectID.String())

	return project, nil
}

// GetProjectByID reads through the project cache.
func (s *ProjectService) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	key := projectID.String()

	if project := s.projectCache.Get(key); project != nil {
		return project, nil
	}

	result, err, _ := s.singleflight.Do(key, func() (any, error) {
		project, err := s.projectRepository.GetProjectByID(projectID)
		if err != nil {
			return nil, errors_utils.NewDependencyError("get project", err)
		}
		if project == nil {
			return nil, errors_utils.NewNotFoundError("project", projectID)
		}

		s.projectCache.Set(key, project)

		return project, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*projects_models.Project), nil
}

// ListProjects returns every project for staff and only the assigned ones
// for a client.
func (s *ProjectService) ListProjects(user *users_models.User) (*projects_dto.ListProjectsResponseDTO, error) {
	var (
		projects []*projects_models.Project
		err      error
	)

	if user.IsStaff() {
		projects, err = s.projectRepository.GetAllProjects()
	} else {
		projects, err = s.projectRepository.GetProjectsByClientID(user.ID)
	}

	if err != nil {
		return nil, errors_utils.NewDependencyError("list projects", err)
	}

	if projects == nil {
		projects = []*projects_models.Project{}
	}

	return &projects_dto.ListProjectsResponseDTO{Projects: projects}, nil
}

func (s *ProjectService) CanUserAccessProject(projectID uuid.UUID, user *users_models.User) (bool, error) {
	project, err := s.GetProjectByID(projectID)
	if err != nil {
		return false, err
	}

	return canUserAccess(project, user), nil
}

// RefreshProgress recomputes the project percentage from its milestones and
// stores it on the project.
func (s *ProjectService) RefreshProgress(projectID uuid.UUID) (int, error) {
	milestones, err := s.milestoneRepository.GetMilestonesByProjectID(projectID)
	if err != nil {
		return 0, errors_utils.NewDependencyError("load milestones", err)
	}

	progress := projects_progress.ComputeProgress(milestones)

	if err := s.projectRepository.UpdateProjectProgress(projectID, progress); err != nil {
		return 0, errors_utils.NewDependencyError("store project progress", err)
	}

	s.projectCache.Invalidate(projectID.String())

	return progress, nil
}

// GetProgressSummary recomputes progress on every read. A stale cached value
// is repaired in passing.
func (s *ProjectService) GetProgressSummary(projectID uuid.UUID) (*projects_dto.ProgressSummaryDTO, error) {
	project, err := s.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	milestones, err := s.milestoneRepository.GetMilestonesByProjectID(projectID)
	if err != nil {
		return nil, errors_utils.NewDependencyError("load milestones", err)
	}

	payment, err := s.paymentService.findPayment(projectID)
	if err != nil {
		return nil, err
	}

	progress := projects_progress.ComputeProgress(milestones)
	completed, _ := projects_progress.CountByState(milestones)

	if progress != project.Progress {
		if err := s.projectRepository.UpdateProjectProgress(projectID, progress); err != nil {
			s.logger.Warn("failed to repair stale project progress", "projectId", projectID, "error", err)
		} else {
			s.projectCache.Invalidate(projectID.String())
		}
	}

	summary := &projects_dto.ProgressSummaryDTO{
		ProjectID:           project.ID,
		ProjectTitle:        project.Title,
		OverallProgress:     progress,
		MilestonesCompleted: completed,
		TotalMilestones:     len(milestones),
		PaymentStatus:       projects_enums.PaymentStatusPending,
	}

	if next := projects_progress.NextIncomplete(milestones); next != nil {
		summary.NextIncompleteMilestone = &projects_dto.NextMilestoneDTO{
			ID:      next.ID,
			Title:   next.Title,
			Status:  next.Status,
			DueDate: next.DueDate,
		}
	}

	if payment != nil {
		summary.PaymentStatus = payment.Status
		summary.AmountPaid = payment.AmountPaid
		summary.TotalAmount = payment.TotalAmount
		summary.Balance = payment.Balance()
	}

	return summary, nil
}

// ShareProgressSummary builds the summary and sends it to the assigned
// client. Nothing is modified.
func (s *ProjectService) ShareProgressSummary(projectID uuid.UUID) (*projects_dto.ProgressSummaryDTO, error) {
	summary, err := s.GetProgressSummary(projectID)
	if err != nil {
		return nil, err
	}

	project, err := s.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	s.eventHub.Publish(projects_interfaces.ProjectEvent{
		Type:    projects_interfaces.ProjectEventProgressShared,
		Project: project,
		Summary: summary,
	})

	return summary, nil
}

func (s *ProjectService) getProjectForUpdate(projectID uuid.UUID) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, errors_utils.NewDependencyError("get project", err)
	}
	if project == nil {
		return nil, errors_utils.NewNotFoundError("project", projectID)
	}

	return project, nil
}

func (s *ProjectService) resolveClientForNewProject(
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*uuid.UUID, error) {
	if !creator.IsStaff() {
		client, err := s.clientDirectory.EnsureClient(creator)
		if err != nil {
			return nil, err
		}

		return &client.ID, nil
	}

	if request.ClientID != nil && request.NewClient != nil {
		return nil, errors_utils.NewValidationError(
			errors_utils.CodeInvalidValue,
			"clientId",
			"select an existing client or provide a new one, not both",
		)
	}

	if request.ClientID != nil {
		client, err := s.resolveExistingClient(*request.ClientID)
		if err != nil {
			return nil, err
		}

		return &client.ID, nil
	}

	if request.NewClient != nil {
		client, err := s.clientDirectory.ProvisionClient(request.NewClient)
		if err != nil {
			return nil, err
		}

		return &client.ID, nil
	}

	return nil, nil
}

func (s *ProjectService) resolveExistingClient(clientID uuid.UUID) (*users_models.User, error) {
	client, err := s.clientDirectory.GetUserByID(clientID)
	if err != nil {
		return nil, errors_utils.NewDependencyError("look up client", err)
	}

	if client == nil || !client.IsClient() {
		return nil, errors_utils.NewValidationError(
			errors_utils.CodeInvalidValue, "clientId", "client "+clientID.String()+" does not exist",
		)
	}

	return client, nil
}

func canUserAccess(project *projects_models.Project, user *users_models.User) bool {
	if user.IsStaff() {
		return true
	}

	return project.IsOwnedByClient(user.ID)
}
