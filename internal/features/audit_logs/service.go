package audit_logs

import (
	"fmt"
	"log/slog"
	"time"

	projects_interfaces "agencyops/internal/features/projects/interfaces"
	errors_utils "agencyops/internal/util/errors"

	"github.com/google/uuid"
)

const (
	defaultAuditLogLimit = 100
	maxAuditLogLimit     = 1000
)

// AuditLogService records project lifecycle events as activity entries for
// staff. Writing is best effort: a failed insert is logged and dropped.
type AuditLogService struct {
	auditLogStore AuditLogStore
	logger        *slog.Logger
}

func NewAuditLogService(auditLogStore AuditLogStore, logger *slog.Logger) *AuditLogService {
	return &AuditLogService{
		auditLogStore: auditLogStore,
		logger:        logger,
	}
}

func (s *AuditLogService) OnProjectEvent(event projects_interfaces.ProjectEvent) {
	if event.Project == nil {
		return
	}

	message, ok := describeEvent(event)
	if !ok {
		return
	}

	createdAt := event.OccurredAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	s.WriteAuditLog(event.Project.ID, string(event.Type), message, createdAt)
}

func (s *AuditLogService) WriteAuditLog(projectID uuid.UUID, eventType, message string, createdAt time.Time) {
	auditLog := &AuditLog{
		ProjectID: projectID,
		EventType: eventType,
		Message:   message,
		CreatedAt: createdAt,
	}

	if err := s.auditLogStore.Create(auditLog); err != nil {
		s.logger.Error("failed to create audit log", "projectId", projectID, "event", eventType, "error", err)
	}
}

func (s *AuditLogService) GetProjectAuditLogs(
	projectID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	limit := request.Limit
	if limit <= 0 || limit > maxAuditLogLimit {
		limit = defaultAuditLogLimit
	}

	offset := max(request.Offset, 0)

	auditLogs, err := s.auditLogStore.GetByProject(projectID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, errors_utils.NewDependencyError("get audit logs", err)
	}

	total, err := s.auditLogStore.CountByProject(projectID, request.BeforeDate)
	if err != nil {
		return nil, errors_utils.NewDependencyError("count audit logs", err)
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func describeEvent(event projects_interfaces.ProjectEvent) (string, bool) {
	project := event.Project

	switch event.Type {
	case projects_interfaces.ProjectEventCreated:
		return fmt.Sprintf("Project %q created with status %s", project.Title, project.Status), true

	case projects_interfaces.ProjectEventStatusChanged:
		return fmt.Sprintf("Status changed from %s to %s", event.PreviousStatus, project.Status), true

	case projects_interfaces.ProjectEventClientAssigned:
		if !project.HasClient() {
			return "", false
		}

		return fmt.Sprintf("Client %s assigned", *project.ClientID), true

	case projects_interfaces.ProjectEventMilestoneCompleted:
		if event.Milestone == nil {
			return "", false
		}

		return fmt.Sprintf("Milestone %q completed, progress %d%%", event.Milestone.Title, project.Progress), true

	case projects_interfaces.ProjectEventPaymentUpdated:
		if event.Payment == nil {
			return "", false
		}

		return fmt.Sprintf(
			"Payment %s, paid %.2f of %.2f",
			event.Payment.Status, event.Payment.AmountPaid, event.Payment.TotalAmount,
		), true

	case projects_interfaces.ProjectEventProgressShared:
		if event.Summary == nil {
			return "", false
		}

		return fmt.Sprintf("Progress summary shared with client at %d%%", event.Summary.OverallProgress), true
	}

	return "", false
}
