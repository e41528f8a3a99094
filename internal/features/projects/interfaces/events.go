package projects_interfaces

import (
	"time"

	projects_dto "agencyops/internal/features/projects/dto"
	projects_enums "agencyops/internal/features/projects/enums"
	projects_models "agencyops/internal/features/projects/models"
)

type ProjectEventType string

const (
	ProjectEventCreated            ProjectEventType = "project.created"
	ProjectEventStatusChanged      ProjectEventType = "project.status_changed"
	ProjectEventClientAssigned     ProjectEventType = "project.client_assigned"
	ProjectEventMilestoneCompleted ProjectEventType = "project.milestone_completed"
	ProjectEventPaymentUpdated     ProjectEventType = "project.payment_updated"
	ProjectEventProgressShared     ProjectEventType = "project.progress_shared"
)

// ProjectEvent is published after the primary write succeeded. Only the
// fields relevant to Type are set.
type ProjectEvent struct {
	Type           ProjectEventType
	Project        *projects_models.Project
	PreviousStatus projects_enums.ProjectStatus
	Milestone      *projects_models.Milestone
	Payment        *projects_models.Payment
	Summary        *projects_dto.ProgressSummaryDTO
	OccurredAt     time.Time
}

// ProjectEventListener reacts to lifecycle events. It has no way to fail the
// operation that produced the event.
type ProjectEventListener interface {
	OnProjectEvent(event ProjectEvent)
}
