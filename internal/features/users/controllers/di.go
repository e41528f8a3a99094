package users_controllers

import (
	"sync"

	users_services "agencyops/internal/features/users/services"
)

var (
	userController     *UserController
	userControllerOnce sync.Once
)

func GetUserController() *UserController {
	userControllerOnce.Do(func() {
		userController = NewUserController(users_services.GetUserService())
	})

	return userController
}
