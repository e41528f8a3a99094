package users_enums

// UserRole is the role claim supplied by the identity provider.
type UserRole string

const (
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleStaff  UserRole = "STAFF"
	UserRoleClient UserRole = "CLIENT"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleStaff, UserRoleClient:
		return true
	default:
		return false
	}
}

func (r UserRole) IsStaff() bool {
	return r == UserRoleAdmin || r == UserRoleStaff
}
