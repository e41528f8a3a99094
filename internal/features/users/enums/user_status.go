package users_enums

// UserStatus of a locally known account. Clients provisioned by staff start
// as INVITED until they complete sign up with the identity provider.
type UserStatus string

const (
	UserStatusInvited  UserStatus = "INVITED"
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)
