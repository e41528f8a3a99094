package projects_testing

import (
	"sync"
	"testing"

	"agencyops/internal/features/notifications"
	notifications_testing "agencyops/internal/features/notifications/testing"
	projects_dto "agencyops/internal/features/projects/dto"
	projects_interfaces "agencyops/internal/features/projects/interfaces"
	projects_models "agencyops/internal/features/projects/models"
	projects_services "agencyops/internal/features/projects/services"
	users_enums "agencyops/internal/features/users/enums"
	users_middleware "agencyops/internal/features/users/middleware"
	users_models "agencyops/internal/features/users/models"
	users_testing "agencyops/internal/features/users/testing"
	"agencyops/internal/util/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// ProjectFixture wires every project service against in-memory stores, with
// the notification emitter registered on the event hub the same way
// notifications.SetupDependencies does in production.
type ProjectFixture struct {
	Users *users_testing.UserFixture

	ProjectRepository      *InMemoryProjectRepository
	MilestoneRepository    *InMemoryMilestoneRepository
	PaymentRepository      *InMemoryPaymentRepository
	TeamRepository         *InMemoryTeamRepository
	NotificationRepository *notifications_testing.InMemoryNotificationRepository
	Cache                  *InMemoryProjectCache
	Events                 *EventRecorder

	EventHub            *projects_services.ProjectEventHub
	ProjectService      *projects_services.ProjectService
	MilestoneService    *projects_services.MilestoneService
	PaymentService      *projects_services.PaymentService
	TeamService         *projects_services.TeamService
	NotificationService *notifications.NotificationService
}

func NewProjectFixture() *ProjectFixture {
	log := logger.GetLogger()

	fixture := &ProjectFixture{
		Users:                  users_testing.NewUserFixture(),
		ProjectRepository:      NewInMemoryProjectRepository(),
		MilestoneRepository:    NewInMemoryMilestoneRepository(),
		PaymentRepository:      NewInMemoryPaymentRepository(),
		TeamRepository:         NewInMemoryTeamRepository(),
		NotificationRepository: notifications_testing.NewInMemoryNotificationRepository(),
		Cache:                  NewInMemoryProjectCache(),
		Events:                 &EventRecorder{},
	}

	fixture.EventHub = projects_services.NewProjectEventHub(log)
	fixture.PaymentService = projects_services.NewPaymentService(
		fixture.PaymentRepository,
		fixture.ProjectRepository,
		fixture.EventHub,
		log,
	)
	fixture.ProjectService = projects_services.NewProjectService(
		fixture.ProjectRepository,
		fixture.MilestoneRepository,
		fixture.PaymentService,
		fixture.Users.UserService,
		fixture.EventHub,
		fixture.Cache,
		log,
	)
	fixture.MilestoneService = projects_services.NewMilestoneService(
		fixture.MilestoneRepository,
		fixture.ProjectService,
		fixture.EventHub,
		log,
	)
	fixture.TeamService = projects_services.NewTeamService(
		fixture.TeamRepository,
		fixture.ProjectService,
		fixture.Users.UserService,
		log,
	)

	fixture.NotificationService = notifications.NewNotificationService(fixture.NotificationRepository, log)
	fixture.EventHub.AddListener(fixture.Events)
	fixture.EventHub.AddListener(notifications.NewProjectNotifier(fixture.NotificationService))

	return fixture
}

func (f *ProjectFixture) CreateStaff() *users_models.User {
	return f.Users.CreateUser(users_enums.UserRoleStaff)
}

func (f *ProjectFixture) CreateClient() *users_models.User {
	return f.Users.CreateUser(users_enums.UserRoleClient)
}

// CreateTestProject creates a project through the service with the minimal
// valid request.
func (f *ProjectFixture) CreateTestProject(
	t *testing.T,
	creator *users_models.User,
	modify ...func(request *projects_dto.CreateProjectRequestDTO),
) *projects_models.Project {
	t.Helper()

	request := &projects_dto.CreateProjectRequestDTO{
		Title:       "Brand refresh",
		Description: "New visual identity for the spring launch",
		ServiceType: "branding",
		Category:    "design",
	}

	for _, apply := range modify {
		apply(request)
	}

	project, err := f.ProjectService.CreateProject(request, creator)
	require.NoError(t, err)

	return project
}

func (f *ProjectFixture) MilestonesOf(t *testing.T, project *projects_models.Project) []*projects_models.Milestone {
	t.Helper()

	milestones, err := f.MilestoneRepository.GetMilestonesByProjectID(project.ID)
	require.NoError(t, err)

	return milestones
}

// CreateTestRouter mounts the given controllers behind the bearer-token
// middleware, as main.go does.
func (f *ProjectFixture) CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("/api/v1")
	protected.Use(users_middleware.AuthMiddleware(f.Users.UserService))

	for _, controller := range controllers {
		controller.RegisterRoutes(protected)
	}

	return router
}

// EventRecorder keeps every published project event.
type EventRecorder struct {
	mu     sync.Mutex
	events []projects_interfaces.ProjectEvent
}

func (r *EventRecorder) OnProjectEvent(event projects_interfaces.ProjectEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

func (r *EventRecorder) OfType(eventType projects_interfaces.ProjectEventType) []projects_interfaces.ProjectEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	matching := []projects_interfaces.ProjectEvent{}
	for _, event := range r.events {
		if event.Type == eventType {
			matching = append(matching, event)
		}
	}

	return matching
}

func (r *EventRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.events)
}
