package projects_services

import (
	"errors"
	"log/slog"
	"time"

	projects_dto "agencyops/internal/features/projects/dto"
	projects_interfaces "agencyops/internal/features/projects/interfaces"
	projects_models "agencyops/internal/features/projects/models"
	errors_utils "agencyops/internal/util/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamService struct {
	teamRepository  projects_interfaces.TeamRepository
	projectService  *ProjectService
	memberDirectory projects_interfaces.ClientDirectory
	logger          *slog.Logger
}

func NewTeamService(
	teamRepository projects_interfaces.TeamRepository,
	projectService *ProjectService,
	memberDirectory projects_interfaces.ClientDirectory,
	logger *slog.Logger,
) *TeamService {
	return &TeamService{
		teamRepository:  teamRepository,
		projectService:  projectService,
		memberDirectory: memberDirectory,
		logger:          logger,
	}
}

// AssignMember adds a staff member to the project roster. The existence
// check is not atomic; the database unique index rejects the rare duplicate
// that slips through and it is reported as the same conflict.
func (s *TeamService) AssignMember(projectID, memberID uuid.UUID) (*projects_models.TeamMember, error) {
	if _, err := s.projectService.GetProjectByID(projectID); err != nil {
		return nil, err
	}

	member, err := s.memberDirectory.GetUserByID(memberID)
	if err != nil {
		return nil, errors_utils.NewDependencyError("look up team member", err)
	}
	if member == nil {
		return nil, errors_utils.NewNotFoundError("member", memberID)
	}
	if !member.IsStaff() {
		return nil, errors_utils.NewValidationError(
			errors_utils.CodeInvalidValue, "memberId", "only staff can be assigned to a project team",
		)
	}

	existing, err := s.teamRepository.GetTeamMember(projectID, memberID)
	if err != nil {
		return nil, errors_utils.NewDependencyError("check team roster", err)
	}
	if existing != nil {
		return nil, errors_utils.NewConflictError("member is already assigned to this project")
	}

	teamMember := &projects_models.TeamMember{
		ID:         uuid.New(),
		ProjectID:  projectID,
		MemberID:   memberID,
		AssignedAt: time.Now().UTC(),
	}

	if err := s.teamRepository.CreateTeamMember(teamMember); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors_utils.NewConflictError("member is already assigned to this project")
		}

		return nil, errors_utils.NewDependencyError("assign team member", err)
	}

	s.logger.Info("team member assigned", "projectId", projectID, "memberId", memberID)

	return teamMember, nil
}

// RemoveMember is a no-op when the member is not on the roster.
func (s *TeamService) RemoveMember(projectID, memberID uuid.UUID) error {
	existing, err := s.teamRepository.GetTeamMember(projectID, memberID)
	if err != nil {
		return errors_utils.NewDependencyError("check team roster", err)
	}
	if existing == nil {
		return nil
	}

	if err := s.teamRepository.DeleteTeamMember(projectID, memberID); err != nil {
		return errors_utils.NewDependencyError("remove team member", err)
	}

	s.logger.Info("team member removed", "projectId", projectID, "memberId", memberID)

	return nil
}

func (s *TeamService) GetTeam(projectID uuid.UUID) (*projects_dto.ListTeamResponseDTO, error) {
	if _, err := s.projectService.GetProjectByID(projectID); err != nil {
		return nil, err
	}

	members, err := s.teamRepository.GetTeamMembers(projectID)
	if err != nil {
		return nil, errors_utils.NewDependencyError("load team roster", err)
	}

	return &projects_dto.ListTeamResponseDTO{Members: members}, nil
}
