package notifications

import (
	"fmt"

	projects_interfaces "agencyops/internal/features/projects/interfaces"
)

// ProjectNotifier turns project lifecycle events into notifications for the
// assigned client. Projects without a client produce nothing.
type ProjectNotifier struct {
	notificationService *NotificationService
}

func NewProjectNotifier(notificationService *NotificationService) *ProjectNotifier {
	return &ProjectNotifier{notificationService: notificationService}
}

func (n *ProjectNotifier) OnProjectEvent(event projects_interfaces.ProjectEvent) {
	project := event.Project
	if project == nil || !project.HasClient() {
		return
	}

	message, category, ok := describeProjectEvent(event)
	if !ok {
		return
	}

	n.notificationService.Emit(*project.ClientID, project.ID, message, category)
}

func describeProjectEvent(event projects_interfaces.ProjectEvent) (string, NotificationCategory, bool) {
	project := event.Project

	switch event.Type {
	case projects_interfaces.ProjectEventCreated:
		return fmt.Sprintf("Your project %q has been created and is pending review.", project.Title),
			NotificationCategoryProjectCreated, true

	case projects_interfaces.ProjectEventStatusChanged:
		return fmt.Sprintf(
				"Project %q status changed from %s to %s.",
				project.Title, event.PreviousStatus, project.Status,
			),
			NotificationCategoryProjectUpdate, true

	case projects_interfaces.ProjectEventClientAssigned:
		return fmt.Sprintf("You have been assigned to project %q.", project.Title),
			NotificationCategoryProjectUpdate, true

	case projects_interfaces.ProjectEventMilestoneCompleted:
		if event.Milestone == nil {
			return "", "", false
		}

		return fmt.Sprintf("Milestone %q of project %q has been completed.", event.Milestone.Title, project.Title),
			NotificationCategoryProjectUpdate, true

	case projects_interfaces.ProjectEventPaymentUpdated:
		if event.Payment == nil {
			return "", "", false
		}

		return fmt.Sprintf("Payment status for project %q is now %s.", project.Title, event.Payment.Status),
			NotificationCategoryProjectUpdate, true

	case projects_interfaces.ProjectEventProgressShared:
		if event.Summary == nil {
			return "", "", false
		}

		return fmt.Sprintf(
				"Project %q is %d%% complete (%d of %d milestones done).",
				project.Title,
				event.Summary.OverallProgress,
				event.Summary.MilestonesCompleted,
				event.Summary.TotalMilestones,
			),
			NotificationCategoryProjectUpdate, true
	}

	return "", "", false
}
