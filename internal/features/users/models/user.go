package users_models

import (
	"time"

	users_enums "agencyops/internal/features/users/enums"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID              `json:"id"        gorm:"column:id"`
	Email     string                 `json:"email"     gorm:"column:email"`
	FullName  string                 `json:"fullName"  gorm:"column:full_name"`
	Company   string                 `json:"company"   gorm:"column:company"`
	Phone     string                 `json:"phone"     gorm:"column:phone"`
	Role      users_enums.UserRole   `json:"role"      gorm:"column:role"`
	Status    users_enums.UserStatus `json:"status"    gorm:"column:status"`
	CreatedAt time.Time              `json:"createdAt" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsStaff() bool {
	return u.Role.IsStaff()
}

func (u *User) IsClient() bool {
	return u.Role == users_enums.UserRoleClient
}

func (u *User) IsActiveUser() bool {
	return u.Status != users_enums.UserStatusInactive
}
