package projects_services

import (
	"sync"

	"agencyops/internal/cache"
	projects_models "agencyops/internal/features/projects/models"
	projects_repositories "agencyops/internal/features/projects/repositories"
	users_services "agencyops/internal/features/users/services"
	cache_utils "agencyops/internal/util/cache"
	"agencyops/internal/util/logger"
)

var (
	projectRepository   = &projects_repositories.ProjectRepository{}
	milestoneRepository = &projects_repositories.MilestoneRepository{}
	paymentRepository   = &projects_repositories.PaymentRepository{}
	teamRepository      = &projects_repositories.TeamRepository{}

	projectEventHub  *ProjectEventHub
	paymentService   *PaymentService
	projectService   *ProjectService
	milestoneService *MilestoneService
	teamService      *TeamService

	servicesOnce sync.Once
)

func setupServices() {
	servicesOnce.Do(func() {
		log := logger.GetLogger()
		userService := users_services.GetUserService()

		projectEventHub = NewProjectEventHub(log)

		paymentService = NewPaymentService(paymentRepository, projectRepository, projectEventHub, log)

		projectService = NewProjectService(
			projectRepository,
			milestoneRepository,
			paymentService,
			userService,
			projectEventHub,
			cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "ao_project:"),
			log,
		)

		milestoneService = NewMilestoneService(milestoneRepository, projectService, projectEventHub, log)
		teamService = NewTeamService(teamRepository, projectService, userService, log)
	})
}

func GetProjectEventHub() *ProjectEventHub {
	setupServices()
	return projectEventHub
}

func GetProjectService() *ProjectService {
	setupServices()
	return projectService
}

func GetMilestoneService() *MilestoneService {
	setupServices()
	return milestoneService
}

func GetPaymentService() *PaymentService {
	setupServices()
	return paymentService
}

func GetTeamService() *TeamService {
	setupServices()
	return teamService
}
