package projects_services

import (
	"log/slog"
	"strings"
	"time"

	projects_dto "agencyops/internal/features/projects/dto"
	projects_enums "agencyops/internal/features/projects/enums"
	projects_interfaces "agencyops/internal/features/projects/interfaces"
	projects_models "agencyops/internal/features/projects/models"
	errors_utils "agencyops/internal/util/errors"
	"agencyops/internal/util/metrics"

	"github.com/google/uuid"
)

type MilestoneService struct {
	milestoneRepository projects_interfaces.MilestoneRepository
	projectService      *ProjectService
	eventHub            *ProjectEventHub
	logger              *slog.Logger
}

func NewMilestoneService(
	milestoneRepository projects_interfaces.MilestoneRepository,
	projectService *ProjectService,
	eventHub *ProjectEventHub,
	logger *slog.Logger,
) *MilestoneService {
	return &MilestoneService{
		milestoneRepository: milestoneRepository,
		projectService:      projectService,
		eventHub:            eventHub,
		logger:              logger,
	}
}

// AddMilestone appends a milestone after the existing ones and refreshes the
// project progress.
func (s *MilestoneService) AddMilestone(
	projectID uuid.UUID,
	request *projects_dto.AddMilestoneRequestDTO,
) (*projects_models.Milestone, error) {
	if err := validateAddMilestoneRequest(request); err != nil {
		return nil, err
	}

	if _, err := s.projectService.GetProjectByID(projectID); err != nil {
		return nil, err
	}

	count, err := s.milestoneRepository.CountMilestonesByProjectID(projectID)
	if err != nil {
		return nil, errors_utils.NewDependencyError("count milestones", err)
	}

	status := request.Status
	if status == "" {
		status = projects_enums.MilestoneStatusNotStarted
	}

	now := time.Now().UTC()
	milestone := &projects_models.Milestone{
		ID:             uuid.New(),
		ProjectID:      projectID,
		Title:          strings.TrimSpace(request.Title),
		Description:    strings.TrimSpace(request.Description),
		Status:         status,
		DueDate:        request.DueDate,
		EstimatedHours: request.EstimatedHours,
		OrderIndex:     count + 1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.milestoneRepository.CreateMilestone(milestone); err != nil {
		return nil, errors_utils.NewDependencyError("create milestone", err)
	}

	if _, err := s.projectService.RefreshProgress(projectID); err != nil {
		return nil, err
	}

	return milestone, nil
}

func (s *MilestoneService) GetMilestones(projectID uuid.UUID) (*projects_dto.ListMilestonesResponseDTO, error) {
	if _, err := s.projectService.GetProjectByID(projectID); err != nil {
		return nil, err
	}

	milestones, err := s.milestoneRepository.GetMilestonesByProjectID(projectID)
	if err != nil {
		return nil, errors_utils.NewDependencyError("load milestones", err)
	}

	return &projects_dto.ListMilestonesResponseDTO{Milestones: milestones}, nil
}

func (s *MilestoneService) GetMilestoneByID(milestoneID uuid.UUID) (*projects_models.Milestone, error) {
	milestone, err := s.milestoneRepository.GetMilestoneByID(milestoneID)
	if err != nil {
		return nil, errors_utils.NewDependencyError("get milestone", err)
	}
	if milestone == nil {
		return nil, errors_utils.NewNotFoundError("milestone", milestoneID)
	}

	return milestone, nil
}

// UpdateMilestoneStatus stores the new status, persists the recomputed
// project progress and notifies the client when the milestone is completed.
func (s *MilestoneService) UpdateMilestoneStatus(
	milestoneID uuid.UUID,
	newStatus projects_enums.MilestoneStatus,
) (*projects_dto.MilestoneStatusResponseDTO, error) {
	if !newStatus.IsValid() {
		return nil, errors_utils.NewValidationError(
			errors_utils.CodeInvalidValue, "status", "unknown milestone status: "+string(newStatus),
		)
	}

	milestone, err := s.GetMilestoneByID(milestoneID)
	if err != nil {
		return nil, err
	}

	if !projects_enums.IsMilestoneTransitionAllowed(milestone.Status, newStatus) {
		return nil, errors_utils.NewValidationError(
			errors_utils.CodeInvalidValue,
			"status",
			"milestone cannot move from "+string(milestone.Status)+" to "+string(newStatus),
		)
	}

	milestone.Status = newStatus
	milestone.UpdatedAt = time.Now().UTC()

	if err := s.milestoneRepository.UpdateMilestone(milestone); err != nil {
		return nil, errors_utils.NewDependencyError("update milestone", err)
	}

	progress, err := s.projectService.RefreshProgress(milestone.ProjectID)
	if err != nil {
		return nil, err
	}

	if newStatus == projects_enums.MilestoneStatusCompleted {
		metrics.RecordMilestoneCompleted()
		s.publishMilestoneCompleted(milestone)
	}

	return &projects_dto.MilestoneStatusResponseDTO{
		Milestone:       milestone,
		ProjectProgress: progress,
	}, nil
}

func (s *MilestoneService) publishMilestoneCompleted(milestone *projects_models.Milestone) {
	project, err := s.projectService.GetProjectByID(milestone.ProjectID)
	if err != nil {
		s.logger.Warn("milestone completed but project could not be loaded for notification",
			"milestoneId", milestone.ID, "error", err)
		return
	}

	s.eventHub.Publish(projects_interfaces.ProjectEvent{
		Type:      projects_interfaces.ProjectEventMilestoneCompleted,
		Project:   project,
		Milestone: milestone,
	})
}
