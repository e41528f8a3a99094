package projects_progress

import (
	projects_models "agencyops/internal/features/projects/models"
)

// ComputeProgress returns the completion percentage of a milestone set.
// Completed milestones count fully, active ones count half and not started
// ones count nothing. The result is rounded half up and is 0 for an empty set.
func ComputeProgress(milestones []*projects_models.Milestone) int {
	total := len(milestones)
	if total == 0 {
		return 0
	}

	completed, active := CountByState(milestones)

	// round(n / total) with n = completed*100 + active*50, kept in integers
	numerator := completed*100 + active*50
	return (2*numerator + total) / (2 * total)
}

func CountByState(milestones []*projects_models.Milestone) (completed int, active int) {
	for _, milestone := range milestones {
		switch {
		case milestone.IsCompleted():
			completed++
		case milestone.Status.IsActive():
			active++
		}
	}

	return completed, active
}

// NextIncomplete returns the first milestone in order that is not completed.
func NextIncomplete(milestones []*projects_models.Milestone) *projects_models.Milestone {
	var next *projects_models.Milestone

	for _, milestone := range milestones {
		if milestone.IsCompleted() {
			continue
		}

		if next == nil || milestone.OrderIndex < next.OrderIndex {
			next = milestone
		}
	}

	return next
}
