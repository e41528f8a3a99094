package audit_logs_test

import (
	"errors"
	"testing"
	"time"

	"agencyops/internal/features/audit_logs"
	audit_logs_testing "agencyops/internal/features/audit_logs/testing"
	projects_dto "agencyops/internal/features/projects/dto"
	projects_enums "agencyops/internal/features/projects/enums"
	projects_interfaces "agencyops/internal/features/projects/interfaces"
	projects_models "agencyops/internal/features/projects/models"
	projects_testing "agencyops/internal/features/projects/testing"
	errors_utils "agencyops/internal/util/errors"
	"agencyops/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordingFixture() (*projects_testing.ProjectFixture, *audit_logs_testing.InMemoryAuditLogRepository, *audit_logs.AuditLogService) {
	fixture := projects_testing.NewProjectFixture()
	repository := audit_logs_testing.NewInMemoryAuditLogRepository()
	service := audit_logs.NewAuditLogService(repository, logger.GetLogger())
	fixture.EventHub.AddListener(service)

	return fixture, repository, service
}

func eventTypes(entries []audit_logs.AuditLog) []string {
	types := make([]string, 0, len(entries))
	for _, entry := range entries {
		types = append(types, entry.EventType)
	}

	return types
}

func Test_OnProjectEvent_WhenLifecycleRuns_RecordsEveryEvent(t *testing.T) {
	fixture, repository, _ := newRecordingFixture()
	staff := fixture.CreateStaff()
	client := fixture.CreateClient()
	budget := 1000.0
	project := fixture.CreateTestProject(t, staff, func(request *projects_dto.CreateProjectRequestDTO) {
		request.ClientID = &client.ID
		request.Budget = &budget
	})

	_, err := fixture.ProjectService.ChangeStatus(project.ID, projects_enums.ProjectStatusInProgress)
	require.NoError(t, err)

	milestones := fixture.MilestonesOf(t, project)
	_, err = fixture.MilestoneService.UpdateMilestoneStatus(milestones[0].ID, projects_enums.MilestoneStatusCompleted)
	require.NoError(t, err)

	paid := 400.0
	_, err = fixture.PaymentService.UpdatePayment(project.ID, &projects_dto.UpdatePaymentRequestDTO{AmountPaid: &paid})
	require.NoError(t, err)

	_, err = fixture.ProjectService.ShareProgressSummary(project.ID)
	require.NoError(t, err)

	entries := repository.ForProject(project.ID)
	assert.Equal(t, []string{
		string(projects_interfaces.ProjectEventCreated),
		string(projects_interfaces.ProjectEventStatusChanged),
		string(projects_interfaces.ProjectEventMilestoneCompleted),
		string(projects_interfaces.ProjectEventPaymentUpdated),
		string(projects_interfaces.ProjectEventProgressShared),
	}, eventTypes(entries))

	assert.Equal(t, "Status changed from pending to in-progress", entries[1].Message)
	assert.Contains(t, entries[2].Message, milestones[0].Title)
	assert.Contains(t, entries[3].Message, "paid 400.00 of 1000.00")
	assert.Equal(t, "Progress summary shared with client at 20%", entries[4].Message)
}

func Test_OnProjectEvent_WhenProjectHasNoClient_StillRecords(t *testing.T) {
	fixture, repository, _ := newRecordingFixture()
	staff := fixture.CreateStaff()
	project := fixture.CreateTestProject(t, staff)

	_, err := fixture.ProjectService.ChangeStatus(project.ID, projects_enums.ProjectStatusReview)
	require.NoError(t, err)

	assert.Len(t, repository.ForProject(project.ID), 2)
	assert.Empty(t, fixture.NotificationRepository.All())
}

func Test_OnProjectEvent_WhenClientAssigned_NamesClient(t *testing.T) {
	fixture, repository, _ := newRecordingFixture()
	staff := fixture.CreateStaff()
	client := fixture.CreateClient()
	project := fixture.CreateTestProject(t, staff)

	_, err := fixture.ProjectService.AssignClient(project.ID, client.ID)
	require.NoError(t, err)

	entries := repository.ForProject(project.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, string(projects_interfaces.ProjectEventClientAssigned), entries[1].EventType)
	assert.Equal(t, "Client "+client.ID.String()+" assigned", entries[1].Message)
}

func Test_OnProjectEvent_WhenStoreFails_DoesNotBreakOperation(t *testing.T) {
	fixture, repository, _ := newRecordingFixture()
	repository.FailWith = errors.New("database is down")
	staff := fixture.CreateStaff()
	project := fixture.CreateTestProject(t, staff)

	updated, err := fixture.ProjectService.ChangeStatus(project.ID, projects_enums.ProjectStatusOnHold)

	require.NoError(t, err)
	assert.Equal(t, projects_enums.ProjectStatusOnHold, updated.Status)
	assert.Empty(t, repository.ForProject(project.ID))
}

func Test_OnProjectEvent_WithIncompleteEvent_RecordsNothing(t *testing.T) {
	repository := audit_logs_testing.NewInMemoryAuditLogRepository()
	service := audit_logs.NewAuditLogService(repository, logger.GetLogger())
	project := &projects_models.Project{ID: uuid.New(), Title: "Launch"}

	service.OnProjectEvent(projects_interfaces.ProjectEvent{Type: projects_interfaces.ProjectEventMilestoneCompleted, Project: project})
	service.OnProjectEvent(projects_interfaces.ProjectEvent{Type: projects_interfaces.ProjectEventPaymentUpdated, Project: project})
	service.OnProjectEvent(projects_interfaces.ProjectEvent{Type: projects_interfaces.ProjectEventClientAssigned, Project: project})
	service.OnProjectEvent(projects_interfaces.ProjectEvent{Type: projects_interfaces.ProjectEventCreated})

	assert.Empty(t, repository.ForProject(project.ID))
}

func Test_GetProjectAuditLogs_PaginatesNewestFirst(t *testing.T) {
	repository := audit_logs_testing.NewInMemoryAuditLogRepository()
	service := audit_logs.NewAuditLogService(repository, logger.GetLogger())
	projectID := uuid.New()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	for i, message := range []string{"first", "second", "third"} {
		service.WriteAuditLog(projectID, "test", message, base.Add(time.Duration(i)*time.Hour))
	}
	service.WriteAuditLog(uuid.New(), "test", "other project", base)

	response, err := service.GetProjectAuditLogs(projectID, &audit_logs.GetAuditLogsRequest{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), response.Total)
	require.Len(t, response.AuditLogs, 2)
	assert.Equal(t, "third", response.AuditLogs[0].Message)
	assert.Equal(t, "second", response.AuditLogs[1].Message)

	response, err = service.GetProjectAuditLogs(projectID, &audit_logs.GetAuditLogsRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, response.AuditLogs, 1)
	assert.Equal(t, "first", response.AuditLogs[0].Message)

	before := base.Add(90 * time.Minute)
	response, err = service.GetProjectAuditLogs(projectID, &audit_logs.GetAuditLogsRequest{BeforeDate: &before})
	require.NoError(t, err)
	assert.Equal(t, int64(2), response.Total)
	assert.Equal(t, 100, response.Limit)
}

func Test_GetProjectAuditLogs_WhenStoreFails_ReturnsDependencyError(t *testing.T) {
	service := audit_logs.NewAuditLogService(&failingAuditLogStore{}, logger.GetLogger())

	_, err := service.GetProjectAuditLogs(uuid.New(), &audit_logs.GetAuditLogsRequest{})

	var dependencyErr *errors_utils.DependencyError
	assert.ErrorAs(t, err, &dependencyErr)
}

type failingAuditLogStore struct{}

func (s *failingAuditLogStore) Create(*audit_logs.AuditLog) error {
	return errors.New("database is down")
}

func (s *failingAuditLogStore) GetByProject(uuid.UUID, int, int, *time.Time) ([]*audit_logs.AuditLogDTO, error) {
	return nil, errors.New("database is down")
}

func (s *failingAuditLogStore) CountByProject(uuid.UUID, *time.Time) (int64, error) {
	return 0, errors.New("database is down")
}
