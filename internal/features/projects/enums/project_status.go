package projects_enums

type ProjectStatus string

const (
	ProjectStatusPending    ProjectStatus = "pending"
	ProjectStatusReview     ProjectStatus = "review"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusOnHold     ProjectStatus = "on-hold"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusDelivered  ProjectStatus = "delivered"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPending,
		ProjectStatusReview,
		ProjectStatusInProgress,
		ProjectStatusOnHold,
		ProjectStatusCompleted,
		ProjectStatusDelivered,
		ProjectStatusCancelled:
		return true
	default:
		return false
	}
}

// IsStatusTransitionAllowed is the only place that decides whether a project
// may move between two statuses. Staff can currently jump to any status,
// including out of cancelled or delivered, to correct mistakes.
func IsStatusTransitionAllowed(from, to ProjectStatus) bool {
	return to.IsValid()
}
