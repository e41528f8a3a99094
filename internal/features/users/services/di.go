package users_services

import (
	"sync"

	"agencyops/internal/config"
	users_repositories "agencyops/internal/features/users/repositories"
	"agencyops/internal/util/logger"
)

var (
	userRepository = &users_repositories.UserRepository{}

	userService     *UserService
	userServiceOnce sync.Once
)

func GetUserService() *UserService {
	userServiceOnce.Do(func() {
		userService = NewUserService(
			userRepository,
			config.GetEnv().IdentityJwtSecret,
			logger.GetLogger(),
		)
	})

	return userService
}
