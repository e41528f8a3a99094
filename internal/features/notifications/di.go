package notifications

import (
	"sync"

	"agencyops/internal/config"
	projects_services "agencyops/internal/features/projects/services"
	"agencyops/internal/util/logger"
	"agencyops/internal/util/mq"
)

var (
	notificationRepository = &NotificationRepository{}

	notificationService    *NotificationService
	notificationController *NotificationController
	publisher              *mq.Publisher

	servicesOnce sync.Once
	setupOnce    sync.Once
)

func setupServices() {
	servicesOnce.Do(func() {
		notificationService = NewNotificationService(notificationRepository, logger.GetLogger())
		notificationController = NewNotificationController(notificationService)
	})
}

func GetNotificationService() *NotificationService {
	setupServices()
	return notificationService
}

func GetNotificationController() *NotificationController {
	setupServices()
	return notificationController
}

// SetupDependencies hooks the notifier into the project lifecycle and, when
// RABBITMQ_URL is configured, connects the event publisher.
func SetupDependencies() {
	setupOnce.Do(func() {
		service := GetNotificationService()
		log := logger.GetLogger()

		if url := config.GetEnv().RabbitMqURL; url != "" {
			connected, err := mq.NewPublisher(url)
			if err != nil {
				log.Error("failed to connect notification publisher, events will not be published", "error", err)
			} else {
				publisher = connected
				service.SetEventPublisher(publisher)
			}
		}

		projects_services.GetProjectEventHub().AddListener(NewProjectNotifier(service))
	})
}

func Shutdown() {
	if publisher != nil {
		publisher.Close()
	}
}
