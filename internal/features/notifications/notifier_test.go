package notifications_test

import (
	"testing"

	"agencyops/internal/features/notifications"
	notifications_testing "agencyops/internal/features/notifications/testing"
	projects_dto "agencyops/internal/features/projects/dto"
	projects_enums "agencyops/internal/features/projects/enums"
	projects_interfaces "agencyops/internal/features/projects/interfaces"
	projects_models "agencyops/internal/features/projects/models"
	"agencyops/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createNotifier() (*notifications.ProjectNotifier, *notifications_testing.InMemoryNotificationRepository) {
	repository := notifications_testing.NewInMemoryNotificationRepository()
	service := notifications.NewNotificationService(repository, logger.GetLogger())

	return notifications.NewProjectNotifier(service), repository
}

func projectWithClient() (*projects_models.Project, uuid.UUID) {
	clientID := uuid.New()

	return &projects_models.Project{
		ID:       uuid.New(),
		Title:    "Spring campaign",
		Status:   projects_enums.ProjectStatusInProgress,
		ClientID: &clientID,
	}, clientID
}

func Test_OnProjectEvent_WhenProjectCreated_EmitsProjectCreatedToClient(t *testing.T) {
	notifier, repository := createNotifier()
	project, clientID := projectWithClient()

	notifier.OnProjectEvent(projects_interfaces.ProjectEvent{
		Type:    projects_interfaces.ProjectEventCreated,
		Project: project,
	})

	stored := repository.ForRecipient(clientID)
	require.Len(t, stored, 1)
	assert.Equal(t, notifications.NotificationCategoryProjectCreated, stored[0].Category)
	assert.Equal(t, project.ID, stored[0].ProjectID)
	assert.Contains(t, stored[0].Message, "Spring campaign")
}

func Test_OnProjectEvent_WhenStatusChanged_DescribesBothStatuses(t *testing.T) {
	notifier, repository := createNotifier()
	project, clientID := projectWithClient()

	notifier.OnProjectEvent(projects_interfaces.ProjectEvent{
		Type:           projects_interfaces.ProjectEventStatusChanged,
		Project:        project,
		PreviousStatus: projects_enums.ProjectStatusReview,
	})

	stored := repository.ForRecipient(clientID)
	require.Len(t, stored, 1)
	assert.Equal(t, notifications.NotificationCategoryProjectUpdate, stored[0].Category)
	assert.Contains(t, stored[0].Message, "from review to in-progress")
}

func Test_OnProjectEvent_WhenMilestoneCompleted_NamesMilestone(t *testing.T) {
	notifier, repository := createNotifier()
	project, clientID := projectWithClient()

	notifier.OnProjectEvent(projects_interfaces.ProjectEvent{
		Type:      projects_interfaces.ProjectEventMilestoneCompleted,
		Project:   project,
		Milestone: &projects_models.Milestone{Title: "Design"},
	})

	stored := repository.ForRecipient(clientID)
	require.Len(t, stored, 1)
	assert.Contains(t, stored[0].Message, `"Design"`)
}

func Test_OnProjectEvent_WhenProgressShared_IncludesPercentage(t *testing.T) {
	notifier, repository := createNotifier()
	project, clientID := projectWithClient()

	notifier.OnProjectEvent(projects_interfaces.ProjectEvent{
		Type:    projects_interfaces.ProjectEventProgressShared,
		Project: project,
		Summary: &projects_dto.ProgressSummaryDTO{
			OverallProgress:     30,
			MilestonesCompleted: 1,
			TotalMilestones:     5,
		},
	})

	stored := repository.ForRecipient(clientID)
	require.Len(t, stored, 1)
	assert.Contains(t, stored[0].Message, "30% complete (1 of 5 milestones done)")
}

func Test_OnProjectEvent_WhenProjectHasNoClient_EmitsNothing(t *testing.T) {
	notifier, repository := createNotifier()

	notifier.OnProjectEvent(projects_interfaces.ProjectEvent{
		Type:    projects_interfaces.ProjectEventCreated,
		Project: &projects_models.Project{ID: uuid.New(), Title: "Internal"},
	})

	assert.Empty(t, repository.All())
}

func Test_OnProjectEvent_WhenPaymentMissing_EmitsNothing(t *testing.T) {
	notifier, repository := createNotifier()
	project, _ := projectWithClient()

	notifier.OnProjectEvent(projects_interfaces.ProjectEvent{
		Type:    projects_interfaces.ProjectEventPaymentUpdated,
		Project: project,
	})

	assert.Empty(t, repository.All())
}
