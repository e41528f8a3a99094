package users_dto

import (
	users_enums "agencyops/internal/features/users/enums"

	"github.com/google/uuid"
)

// ProvisionClientRequestDTO carries the data for a client account created
// while staff set up a project.
type ProvisionClientRequestDTO struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
}

type AccessTokenResponseDTO struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

type UserProfileResponseDTO struct {
	ID      uuid.UUID            `json:"id"`
	Email   string               `json:"email"`
	Role    users_enums.UserRole `json:"role"`
	IsStaff bool                 `json:"isStaff"`
}
