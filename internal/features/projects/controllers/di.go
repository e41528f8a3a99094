package projects_controllers

import (
	"sync"

	"agencyops/internal/cache"
	"agencyops/internal/config"
	projects_services "agencyops/internal/features/projects/services"
	"agencyops/internal/util/logger"
	"agencyops/internal/util/rate_limit"
)

var (
	projectController   *ProjectController
	milestoneController *MilestoneController
	paymentController   *PaymentController
	teamController      *TeamController

	controllersOnce sync.Once
)

func setupControllers() {
	controllersOnce.Do(func() {
		projectService := projects_services.GetProjectService()

		shareLimiter := rate_limit.NewRateLimiter(
			cache.GetCache(),
			"ao_rate_limit:share:",
			config.GetEnv().ShareProgressRps,
			1,
			logger.GetLogger(),
		)

		projectController = NewProjectController(projectService, shareLimiter)
		milestoneController = NewMilestoneController(projects_services.GetMilestoneService(), projectService)
		paymentController = NewPaymentController(projects_services.GetPaymentService(), projectService)
		teamController = NewTeamController(projects_services.GetTeamService())
	})
}

func GetProjectController() *ProjectController {
	setupControllers()
	return projectController
}

func GetMilestoneController() *MilestoneController {
	setupControllers()
	return milestoneController
}

func GetPaymentController() *PaymentController {
	setupControllers()
	return paymentController
}

func GetTeamController() *TeamController {
	setupControllers()
	return teamController
}
