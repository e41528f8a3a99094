package users_services_test

import (
	"errors"
	"testing"

	users_dto "agencyops/internal/features/users/dto"
	users_enums "agencyops/internal/features/users/enums"
	users_models "agencyops/internal/features/users/models"
	users_testing "agencyops/internal/features/users/testing"
	errors_utils "agencyops/internal/util/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetUserFromToken_WhenTokenIssuedForClient_ReturnsClientRole(t *testing.T) {
	fixture := users_testing.NewUserFixture()
	token := fixture.CreateTestUser(users_enums.UserRoleClient)

	user, err := fixture.UserService.GetUserFromToken(token.Token)

	require.NoError(t, err)
	assert.Equal(t, token.UserID, user.ID)
	assert.Equal(t, token.Email, user.Email)
	assert.True(t, user.IsClient())
	assert.False(t, user.IsStaff())
}

func Test_GetUserFromToken_WhenTokenMalformed_ReturnsError(t *testing.T) {
	fixture := users_testing.NewUserFixture()

	_, err := fixture.UserService.GetUserFromToken("not-a-token")

	assert.Error(t, err)
}

func Test_ProvisionClient_WhenEmailIsNew_CreatesInvitedClient(t *testing.T) {
	fixture := users_testing.NewUserFixture()

	client, err := fixture.UserService.ProvisionClient(&users_dto.ProvisionClientRequestDTO{
		FullName: "Acme Corp Contact",
		Email:    "  Contact@Acme.test ",
		Company:  "Acme Corp",
	})

	require.NoError(t, err)
	assert.Equal(t, "contact@acme.test", client.Email)
	assert.Equal(t, users_enums.UserRoleClient, client.Role)
	assert.Equal(t, users_enums.UserStatusInvited, client.Status)
	assert.Equal(t, 1, fixture.Repository.Count())
}

func Test_ProvisionClient_WhenClientAlreadyExists_ReturnsExistingClient(t *testing.T) {
	fixture := users_testing.NewUserFixture()
	request := &users_dto.ProvisionClientRequestDTO{FullName: "Jane", Email: "jane@client.test"}

	first, err := fixture.UserService.ProvisionClient(request)
	require.NoError(t, err)

	second, err := fixture.UserService.ProvisionClient(request)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, fixture.Repository.Count())
}

func Test_ProvisionClient_WhenEmailInvalid_ReturnsValidationError(t *testing.T) {
	fixture := users_testing.NewUserFixture()

	_, err := fixture.UserService.ProvisionClient(&users_dto.ProvisionClientRequestDTO{
		FullName: "Jane",
		Email:    "not-an-email",
	})

	var validationErr *errors_utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, errors_utils.CodeInvalidEmail, validationErr.Code)
	assert.Equal(t, 0, fixture.Repository.Count())
}

func Test_ProvisionClient_WhenNameMissing_ReturnsValidationError(t *testing.T) {
	fixture := users_testing.NewUserFixture()

	_, err := fixture.UserService.ProvisionClient(&users_dto.ProvisionClientRequestDTO{
		Email: "jane@client.test",
	})

	var validationErr *errors_utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, errors_utils.CodeRequired, validationErr.Code)
}

func Test_ProvisionClient_WhenEmailBelongsToStaff_ReturnsValidationError(t *testing.T) {
	fixture := users_testing.NewUserFixture()
	staff := fixture.CreateTestUser(users_enums.UserRoleStaff)

	_, err := fixture.UserService.ProvisionClient(&users_dto.ProvisionClientRequestDTO{
		FullName: "Someone",
		Email:    staff.Email,
	})

	var validationErr *errors_utils.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func Test_ProvisionClient_WhenStorageFails_ReturnsDependencyError(t *testing.T) {
	fixture := users_testing.NewUserFixture()
	fixture.Repository.FailWith = errors.New("connection refused")

	_, err := fixture.UserService.ProvisionClient(&users_dto.ProvisionClientRequestDTO{
		FullName: "Jane",
		Email:    "jane@client.test",
	})

	var dependencyErr *errors_utils.DependencyError
	require.ErrorAs(t, err, &dependencyErr)
	assert.ErrorContains(t, err, "connection refused")
}

func Test_EnsureClient_WhenCallerUnknown_StoresActiveClient(t *testing.T) {
	fixture := users_testing.NewUserFixture()
	caller := &users_models.User{ID: uuid.New(), Email: "Signup@Client.test", Role: users_enums.UserRoleClient}

	client, err := fixture.UserService.EnsureClient(caller)

	require.NoError(t, err)
	assert.Equal(t, caller.ID, client.ID)
	assert.Equal(t, "signup@client.test", client.Email)
	assert.Equal(t, users_enums.UserStatusActive, client.Status)
	assert.True(t, client.IsClient())

	stored, err := fixture.Repository.GetUserByID(caller.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func Test_EnsureClient_WhenCallerExists_ReturnsStoredAccount(t *testing.T) {
	fixture := users_testing.NewUserFixture()
	existing := fixture.CreateUser(users_enums.UserRoleClient)

	client, err := fixture.UserService.EnsureClient(&users_models.User{
		ID:    existing.ID,
		Email: existing.Email,
		Role:  users_enums.UserRoleClient,
	})

	require.NoError(t, err)
	assert.Equal(t, existing.FullName, client.FullName)
	assert.Equal(t, 1, fixture.Repository.Count())
}

func Test_EnsureClient_WhenTokenHasNoEmail_ReturnsValidationError(t *testing.T) {
	fixture := users_testing.NewUserFixture()

	_, err := fixture.UserService.EnsureClient(&users_models.User{ID: uuid.New(), Role: users_enums.UserRoleClient})

	var validationErr *errors_utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, errors_utils.CodeInvalidEmail, validationErr.Code)
	assert.Equal(t, 0, fixture.Repository.Count())
}

func Test_EnsureClient_WhenEmailTakenByAnotherAccount_ReturnsConflictError(t *testing.T) {
	fixture := users_testing.NewUserFixture()
	existing := fixture.CreateUser(users_enums.UserRoleClient)

	_, err := fixture.UserService.EnsureClient(&users_models.User{
		ID:    uuid.New(),
		Email: existing.Email,
		Role:  users_enums.UserRoleClient,
	})

	var conflictErr *errors_utils.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, 1, fixture.Repository.Count())
}
