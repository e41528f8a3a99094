package users_testing

import (
	"fmt"
	"strings"
	"sync"
	"time"

	users_dto "agencyops/internal/features/users/dto"
	users_enums "agencyops/internal/features/users/enums"
	users_models "agencyops/internal/features/users/models"
	users_services "agencyops/internal/features/users/services"
	"agencyops/internal/util/logger"

	"github.com/google/uuid"
)

const TestJwtSecret = "test-identity-secret-with-at-least-32-chars"

// InMemoryUserRepository keeps users in a map. FailWith makes every call
// return the given error.
type InMemoryUserRepository struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]users_models.User
	FailWith error
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: map[uuid.UUID]users_models.User{}}
}

func (r *InMemoryUserRepository) CreateUser(user *users_models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	r.users[user.ID] = *user
	return nil
}

func (r *InMemoryUserRepository) CreateUserIfAbsent(user *users_models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	if _, ok := r.users[user.ID]; ok {
		return nil
	}

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil
		}
	}

	r.users[user.ID] = *user
	return nil
}

func (r *InMemoryUserRepository) GetUserByEmail(email string) (*users_models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailWith != nil {
		return nil, r.FailWith
	}

	for _, user := range r.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}

	return nil, nil
}

func (r *InMemoryUserRepository) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.FailWith != nil {
		return nil, r.FailWith
	}

	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}

	return &user, nil
}

func (r *InMemoryUserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users)
}

type UserFixture struct {
	Repository  *InMemoryUserRepository
	UserService *users_services.UserService
}

func NewUserFixture() *UserFixture {
	return NewUserFixtureWithSecret(TestJwtSecret)
}

func NewUserFixtureWithSecret(secret string) *UserFixture {
	repository := NewInMemoryUserRepository()

	return &UserFixture{
		Repository:  repository,
		UserService: users_services.NewUserService(repository, secret, logger.GetLogger()),
	}
}

// CreateUser stores an active user with the given role.
func (f *UserFixture) CreateUser(role users_enums.UserRole) *users_models.User {
	userID := uuid.New()
	email := fmt.Sprintf("%s-%s@test.com", strings.ToLower(string(role)), userID.String()[:8])

	user := &users_models.User{
		ID:        userID,
		Email:     email,
		FullName:  "Test " + strings.ToLower(string(role)),
		CreatedAt: time.Now().UTC(),
		Role:      role,
		Status:    users_enums.UserStatusActive,
	}

	if err := f.Repository.CreateUser(user); err != nil {
		panic(err)
	}

	return user
}

func (f *UserFixture) CreateTestUser(role users_enums.UserRole) *users_dto.AccessTokenResponseDTO {
	return f.IssueToken(f.CreateUser(role))
}

func (f *UserFixture) IssueToken(user *users_models.User) *users_dto.AccessTokenResponseDTO {
	response, err := f.UserService.GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}
