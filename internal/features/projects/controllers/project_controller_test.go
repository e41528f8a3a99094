package projects_controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	projects_dto "agencyops/internal/features/projects/dto"
	projects_enums "agencyops/internal/features/projects/enums"
	projects_models "agencyops/internal/features/projects/models"
	projects_testing "agencyops/internal/features/projects/testing"
	users_models "agencyops/internal/features/users/models"
	"agencyops/internal/util/rate_limit"
	test_utils "agencyops/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func createProjectsTestRouter(
	t *testing.T,
	shareLimiter ShareLimiter,
) (*gin.Engine, *projects_testing.ProjectFixture) {
	t.Helper()

	fixture := projects_testing.NewProjectFixture()
	router := fixture.CreateTestRouter(
		NewProjectController(fixture.ProjectService, shareLimiter),
		NewMilestoneController(fixture.MilestoneService, fixture.ProjectService),
		NewPaymentController(fixture.PaymentService, fixture.ProjectService),
		NewTeamController(fixture.TeamService),
	)

	return router, fixture
}

func bearer(fixture *projects_testing.ProjectFixture, user *users_models.User) string {
	return "Bearer " + fixture.Users.IssueToken(user).Token
}

func decodeError(t *testing.T, body []byte) map[string]any {
	t.Helper()

	var response map[string]any
	require.NoError(t, json.Unmarshal(body, &response))

	return response
}

func Test_CreateProject_WhenStaffCreatesWithBudget_ReturnsCreatedProject(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))
	staff := fixture.CreateStaff()
	budget := 50000.0

	var project projects_models.Project
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		bearer(fixture, staff),
		projects_dto.CreateProjectRequestDTO{
			Title:        "Spring campaign",
			Description:  "Social and print assets",
			ServiceType:  "campaign",
			Requirements: []string{"Instagram set", "Poster"},
			Budget:       &budget,
		},
		http.StatusCreated,
		&project,
	)

	assert.NotEqual(t, uuid.Nil, project.ID)
	assert.Equal(t, projects_enums.ProjectStatusPending, project.Status)
	assert.Equal(t, projects_enums.ProjectPriorityMedium, project.Priority)
	assert.Equal(t, []string{"Instagram set", "Poster"}, project.Requirements)
	assert.Nil(t, project.ClientID)

	var payment projects_dto.PaymentResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router,
		fmt.Sprintf("/api/v1/projects/%s/payment", project.ID),
		bearer(fixture, staff),
		http.StatusOK,
		&payment,
	)
	assert.Equal(t, 50000.0, payment.TotalAmount)
	assert.Equal(t, projects_enums.PaymentStatusPending, payment.Status)
}

func Test_CreateProject_WhenTitleMissing_ReturnsBadRequestWithField(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/projects",
		bearer(fixture, fixture.CreateStaff()),
		projects_dto.CreateProjectRequestDTO{Description: "No title", ServiceType: "web"},
		http.StatusBadRequest,
	)

	body := decodeError(t, resp.Body)
	assert.Equal(t, "title", body["field"])
	assert.Equal(t, "REQUIRED", body["code"])
}

func Test_CreateProject_WhenBodyMalformed_ReturnsBadRequest(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))

	resp := test_utils.MakePostRequest(
		t, router, "/api/v1/projects", bearer(fixture, fixture.CreateStaff()), "{not json", http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "Invalid request format")
}

func Test_CreateProject_WhenClientCreates_ProjectIsAssignedToClient(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))
	client := fixture.CreateClient()

	var project projects_models.Project
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects",
		bearer(fixture, client),
		projects_dto.CreateProjectRequestDTO{Title: "Logo", Description: "New logo", ServiceType: "branding"},
		http.StatusCreated,
		&project,
	)

	require.NotNil(t, project.ClientID)
	assert.Equal(t, client.ID, *project.ClientID)
}

func Test_GetProjects_ClientSeesOnlyOwnProjects(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))
	staff := fixture.CreateStaff()
	client := fixture.CreateClient()

	own := fixture.CreateTestProject(t, staff, func(request *projects_dto.CreateProjectRequestDTO) {
		request.ClientID = &client.ID
	})
	fixture.CreateTestProject(t, staff)

	var response projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, "/api/v1/projects", bearer(fixture, client), http.StatusOK, &response,
	)

	require.Len(t, response.Projects, 1)
	assert.Equal(t, own.ID, response.Projects[0].ID)
}

func Test_GetProject_WhenClientDoesNotOwnProject_ReturnsForbidden(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))
	project := fixture.CreateTestProject(t, fixture.CreateStaff())

	test_utils.MakeGetRequest(
		t, router,
		fmt.Sprintf("/api/v1/projects/%s", project.ID),
		bearer(fixture, fixture.CreateClient()),
		http.StatusForbidden,
	)
}

func Test_GetProject_WhenProjectMissing_ReturnsNotFound(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))

	test_utils.MakeGetRequest(
		t, router,
		fmt.Sprintf("/api/v1/projects/%s", uuid.New()),
		bearer(fixture, fixture.CreateStaff()),
		http.StatusNotFound,
	)
}

func Test_GetProject_WhenIDInvalid_ReturnsBadRequest(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))

	resp := test_utils.MakeGetRequest(
		t, router, "/api/v1/projects/not-a-uuid", bearer(fixture, fixture.CreateStaff()), http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "Invalid project ID")
}

func Test_ChangeStatus_WhenCallerIsClient_ReturnsForbidden(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))
	client := fixture.CreateClient()
	project := fixture.CreateTestProject(t, client)

	test_utils.MakePutRequest(
		t, router,
		fmt.Sprintf("/api/v1/projects/%s/status", project.ID),
		bearer(fixture, client),
		projects_dto.ChangeStatusRequestDTO{Status: projects_enums.ProjectStatusCompleted},
		http.StatusForbidden,
	)

	stored, err := fixture.ProjectRepository.GetProjectByID(project.ID)
	require.NoError(t, err)
	assert.Equal(t, projects_enums.ProjectStatusPending, stored.Status)
}

func Test_ChangeStatus_WhenStaffChangesStatus_ReturnsUpdatedProject(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))
	staff := fixture.CreateStaff()
	project := fixture.CreateTestProject(t, staff)

	var updated projects_models.Project
	test_utils.MakePutRequestAndUnmarshal(
		t, router,
		fmt.Sprintf("/api/v1/projects/%s/status", project.ID),
		bearer(fixture, staff),
		projects_dto.ChangeStatusRequestDTO{Status: projects_enums.ProjectStatusInProgress},
		http.StatusOK,
		&updated,
	)

	assert.Equal(t, projects_enums.ProjectStatusInProgress, updated.Status)
}

func Test_ChangeStatus_WhenStatusUnknown_ReturnsBadRequest(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))
	staff := fixture.CreateStaff()
	project := fixture.CreateTestProject(t, staff)

	test_utils.MakePutRequest(
		t, router,
		fmt.Sprintf("/api/v1/projects/%s/status", project.ID),
		bearer(fixture, staff),
		map[string]string{"status": "archived"},
		http.StatusBadRequest,
	)
}

func Test_LifecycleUpdates_WhenRequiredFieldMissing_RejectedAtBind(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))
	staff := fixture.CreateStaff()
	project := fixture.CreateTestProject(t, staff)

	for _, path := range []string{"status", "priority", "client"} {
		t.Run(path, func(t *testing.T) {
			resp := test_utils.MakePutRequest(
				t, router,
				fmt.Sprintf("/api/v1/projects/%s/%s", project.ID, path),
				bearer(fixture, staff),
				map[string]string{},
				http.StatusBadRequest,
			)

			assert.Equal(t, "Invalid request format", decodeError(t, resp.Body)["error"])
		})
	}

	stored, err := fixture.ProjectRepository.GetProjectByID(project.ID)
	require.NoError(t, err)
	assert.Equal(t, projects_enums.ProjectStatusPending, stored.Status)
	assert.Nil(t, stored.ClientID)
}

func Test_AssignClient_WhenClientUnknown_ReturnsBadRequest(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))
	staff := fixture.CreateStaff()
	project := fixture.CreateTestProject(t, staff)

	resp := test_utils.MakePutRequest(
		t, router,
		fmt.Sprintf("/api/v1/projects/%s/client", project.ID),
		bearer(fixture, staff),
		projects_dto.AssignClientRequestDTO{ClientID: uuid.New()},
		http.StatusBadRequest,
	)

	assert.Equal(t, "clientId", decodeError(t, resp.Body)["field"])
}

func Test_GetProgressSummary_WhenOwningClientReads_ReturnsSummary(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))
	client := fixture.CreateClient()
	project := fixture.CreateTestProject(t, client)

	var summary projects_dto.ProgressSummaryDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router,
		fmt.Sprintf("/api/v1/projects/%s/progress", project.ID),
		bearer(fixture, client),
		http.StatusOK,
		&summary,
	)

	assert.Equal(t, 0, summary.OverallProgress)
	assert.Equal(t, 5, summary.TotalMilestones)
	require.NotNil(t, summary.NextIncompleteMilestone)
	assert.Equal(t, "Kickoff", summary.NextIncompleteMilestone.Title)
}

func Test_ShareProgressSummary_WhenCalledTooOften_ReturnsTooManyRequests(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(0, 1))
	staff := fixture.CreateStaff()
	client := fixture.CreateClient()
	project := fixture.CreateTestProject(t, staff, func(request *projects_dto.CreateProjectRequestDTO) {
		request.ClientID = &client.ID
	})
	url := fmt.Sprintf("/api/v1/projects/%s/progress/share", project.ID)

	test_utils.MakePostRequest(t, router, url, bearer(fixture, staff), nil, http.StatusOK)
	test_utils.MakePostRequest(t, router, url, bearer(fixture, staff), nil, http.StatusTooManyRequests)

	assert.Len(t, fixture.NotificationRepository.ForRecipient(client.ID), 2)
}

func Test_ShareProgressSummary_WhenProjectMissing_DoesNotSpendToken(t *testing.T) {
	limiter := rate_limit.NewLocalRateLimiter(0, 1)
	router, fixture := createProjectsTestRouter(t, limiter)
	staff := fixture.CreateStaff()
	missingID := uuid.New()
	url := fmt.Sprintf("/api/v1/projects/%s/progress/share", missingID)

	test_utils.MakePostRequest(t, router, url, bearer(fixture, staff), nil, http.StatusNotFound)
	test_utils.MakePostRequest(t, router, url, bearer(fixture, staff), nil, http.StatusNotFound)

	assert.True(t, limiter.Allow(missingID))
}

func Test_ShareProgressSummary_WhenOtherProjectThrottled_StillShares(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(0, 1))
	staff := fixture.CreateStaff()
	first := fixture.CreateTestProject(t, staff)
	second := fixture.CreateTestProject(t, staff)

	firstURL := fmt.Sprintf("/api/v1/projects/%s/progress/share", first.ID)
	secondURL := fmt.Sprintf("/api/v1/projects/%s/progress/share", second.ID)

	test_utils.MakePostRequest(t, router, firstURL, bearer(fixture, staff), nil, http.StatusOK)
	test_utils.MakePostRequest(t, router, firstURL, bearer(fixture, staff), nil, http.StatusTooManyRequests)
	test_utils.MakePostRequest(t, router, secondURL, bearer(fixture, staff), nil, http.StatusOK)
}

func Test_UpdateDetails_WhenBudgetNegative_ReturnsBadRequest(t *testing.T) {
	router, fixture := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))
	staff := fixture.CreateStaff()
	project := fixture.CreateTestProject(t, staff)
	negative := -10.0

	test_utils.MakePutRequest(
		t, router,
		fmt.Sprintf("/api/v1/projects/%s", project.ID),
		bearer(fixture, staff),
		projects_dto.UpdateProjectDetailsRequestDTO{Budget: &negative},
		http.StatusBadRequest,
	)
}

func Test_RequestWithoutToken_ReturnsUnauthorized(t *testing.T) {
	router, _ := createProjectsTestRouter(t, rate_limit.NewLocalRateLimiter(rate.Inf, 1))

	test_utils.MakeGetRequest(t, router, "/api/v1/projects", "", http.StatusUnauthorized)
}
