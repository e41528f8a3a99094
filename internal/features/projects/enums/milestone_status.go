package projects_enums

// MilestoneStatus values are listed in their usual order of progression.
// The order is not enforced.
type MilestoneStatus string

const (
	MilestoneStatusNotStarted MilestoneStatus = "not-started"
	MilestoneStatusStarted    MilestoneStatus = "started"
	MilestoneStatusInProgress MilestoneStatus = "in-progress"
	MilestoneStatusReview     MilestoneStatus = "review"
	MilestoneStatusFinalEdits MilestoneStatus = "final-edits"
	MilestoneStatusCompleted  MilestoneStatus = "completed"
)

func (s MilestoneStatus) IsValid() bool {
	switch s {
	case MilestoneStatusNotStarted,
		MilestoneStatusStarted,
		MilestoneStatusInProgress,
		MilestoneStatusReview,
		MilestoneStatusFinalEdits,
		MilestoneStatusCompleted:
		return true
	default:
		return false
	}
}

// IsActive reports whether work on the milestone has begun but is not done.
func (s MilestoneStatus) IsActive() bool {
	switch s {
	case MilestoneStatusStarted,
		MilestoneStatusInProgress,
		MilestoneStatusReview,
		MilestoneStatusFinalEdits:
		return true
	default:
		return false
	}
}

// IsMilestoneTransitionAllowed permits any move between known statuses,
// reopening a completed milestone included.
func IsMilestoneTransitionAllowed(from, to MilestoneStatus) bool {
	return to.IsValid()
}
