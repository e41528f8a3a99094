package users_interfaces

import (
	users_models "agencyops/internal/features/users/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(user *users_models.User) error
	// CreateUserIfAbsent is a no-op when the id or the email is already taken.
	CreateUserIfAbsent(user *users_models.User) error
	GetUserByEmail(email string) (*users_models.User, error)
	GetUserByID(userID uuid.UUID) (*users_models.User, error)
}
