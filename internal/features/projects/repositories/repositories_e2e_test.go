//go:build e2e

package projects_repositories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	projects_enums "agencyops/internal/features/projects/enums"
	projects_models "agencyops/internal/features/projects/models"
	users_enums "agencyops/internal/features/users/enums"
	users_models "agencyops/internal/features/users/models"
	users_repositories "agencyops/internal/features/users/repositories"
	users_services "agencyops/internal/features/users/services"
	"agencyops/internal/storage"
	"agencyops/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func startPostgres(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping in short mode")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "agencyops",
				"POSTGRES_USER":     "agencyops",
				"POSTGRES_PASSWORD": "secret",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf(
		"host=%s port=%s user=agencyops password=secret dbname=agencyops sslmode=disable",
		host, port.Port(),
	)

	connection, err := storage.OpenDb(dsn)
	require.NoError(t, err)

	applyMigrations(t, connection)
	storage.UseDb(connection)
}

// applyMigrations runs the Up section of every goose file in order.
func applyMigrations(t *testing.T, connection *gorm.DB) {
	t.Helper()

	dir := filepath.Join("..", "..", "..", "..", "migrations")
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		require.NoError(t, err)

		up, _, _ := strings.Cut(string(content), "-- +goose Down")
		require.NoError(t, connection.Exec(up).Error, file)
	}
}

func createUser(t *testing.T, role users_enums.UserRole) *users_models.User {
	t.Helper()

	user := &users_models.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@agency.test",
		FullName:  "Test User",
		Role:      role,
		Status:    users_enums.UserStatusActive,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, storage.GetDb().Create(user).Error)

	return user
}

func createProject(t *testing.T, clientID *uuid.UUID) *projects_models.Project {
	t.Helper()

	now := time.Now().UTC()
	project := &projects_models.Project{
		ID:           uuid.New(),
		Title:        "Packaging",
		Description:  "Box design",
		ServiceType:  "design",
		Requirements: []string{"Front", "Back"},
		Priority:     projects_enums.ProjectPriorityHigh,
		Status:       projects_enums.ProjectStatusPending,
		ClientID:     clientID,
		CreatedBy:    uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, (&ProjectRepository{}).CreateProject(project))

	return project
}

func Test_Repositories_AgainstPostgres(t *testing.T) {
	startPostgres(t)

	t.Run("project requirements round trip and client filter", func(t *testing.T) {
		client := createUser(t, users_enums.UserRoleClient)
		project := createProject(t, &client.ID)
		createProject(t, nil)

		repository := &ProjectRepository{}

		stored, err := repository.GetProjectByID(project.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, []string{"Front", "Back"}, stored.Requirements)

		owned, err := repository.GetProjectsByClientID(client.ID)
		require.NoError(t, err)
		require.Len(t, owned, 1)
		assert.Equal(t, project.ID, owned[0].ID)

		missing, err := repository.GetProjectByID(uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("progress update and milestone ordering", func(t *testing.T) {
		project := createProject(t, nil)
		milestones := projects_models.NewDefaultMilestones(project.ID, time.Now().UTC())

		milestoneRepository := &MilestoneRepository{}
		require.NoError(t, milestoneRepository.CreateMilestones(milestones))

		loaded, err := milestoneRepository.GetMilestonesByProjectID(project.ID)
		require.NoError(t, err)
		require.Len(t, loaded, 5)
		assert.Equal(t, "Kickoff", loaded[0].Title)
		assert.Equal(t, "Delivery", loaded[4].Title)

		count, err := milestoneRepository.CountMilestonesByProjectID(project.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, count)

		projectRepository := &ProjectRepository{}
		require.NoError(t, projectRepository.UpdateProjectProgress(project.ID, 30))

		stored, err := projectRepository.GetProjectByID(project.ID)
		require.NoError(t, err)
		assert.Equal(t, 30, stored.Progress)
	})

	t.Run("one payment per project", func(t *testing.T) {
		project := createProject(t, nil)
		repository := &PaymentRepository{}

		payment := &projects_models.Payment{
			ProjectID:     project.ID,
			Status:        projects_enums.PaymentStatusPending,
			TotalAmount:   1000,
			InvoiceNumber: projects_models.NewInvoiceNumber(project.ID, time.Now()),
		}
		require.NoError(t, repository.CreatePayment(payment))

		duplicate := &projects_models.Payment{
			ProjectID:     project.ID,
			Status:        projects_enums.PaymentStatusPending,
			InvoiceNumber: "INV-DUPLICATE",
		}
		assert.ErrorIs(t, repository.CreatePayment(duplicate), gorm.ErrDuplicatedKey)
	})

	t.Run("team roster unique index", func(t *testing.T) {
		project := createProject(t, nil)
		member := createUser(t, users_enums.UserRoleStaff)
		repository := &TeamRepository{}

		require.NoError(t, repository.CreateTeamMember(&projects_models.TeamMember{
			ProjectID: project.ID,
			MemberID:  member.ID,
		}))

		err := repository.CreateTeamMember(&projects_models.TeamMember{
			ProjectID: project.ID,
			MemberID:  member.ID,
		})
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

		require.NoError(t, repository.DeleteTeamMember(project.ID, member.ID))

		members, err := repository.GetTeamMembers(project.ID)
		require.NoError(t, err)
		assert.Empty(t, members)
	})
	t.Run("client known only from its token can own a project", func(t *testing.T) {
		userService := users_services.NewUserService(
			&users_repositories.UserRepository{}, "e2e-identity-secret-with-32-characters", logger.GetLogger(),
		)
		caller := &users_models.User{
			ID:    uuid.New(),
			Email: uuid.NewString() + "@signup.test",
			Role:  users_enums.UserRoleClient,
		}

		client, err := userService.EnsureClient(caller)
		require.NoError(t, err)
		assert.Equal(t, caller.ID, client.ID)

		project := createProject(t, &client.ID)

		again, err := userService.EnsureClient(caller)
		require.NoError(t, err)
		assert.Equal(t, client.ID, again.ID)

		owned, err := (&ProjectRepository{}).GetProjectsByClientID(caller.ID)
		require.NoError(t, err)
		require.Len(t, owned, 1)
		assert.Equal(t, project.ID, owned[0].ID)
	})

	t.Run("project update writes only the selected columns", func(t *testing.T) {
		client := createUser(t, users_enums.UserRoleClient)
		project := createProject(t, &client.ID)
		repository := &ProjectRepository{}

		stale, err := repository.GetProjectByID(project.ID)
		require.NoError(t, err)

		require.NoError(t, repository.UpdateProjectProgress(project.ID, 60))

		stale.Status = projects_enums.ProjectStatusInProgress
		stale.ClientID = nil
		stale.UpdatedAt = time.Now().UTC()
		require.NoError(t, repository.UpdateProject(stale, "status", "updated_at"))

		stored, err := repository.GetProjectByID(project.ID)
		require.NoError(t, err)
		assert.Equal(t, projects_enums.ProjectStatusInProgress, stored.Status)
		assert.Equal(t, 60, stored.Progress)
		require.NotNil(t, stored.ClientID)
		assert.Equal(t, client.ID, *stored.ClientID)
	})
}
