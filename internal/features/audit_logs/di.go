package audit_logs

import (
	"sync"

	projects_services "agencyops/internal/features/projects/services"
	"agencyops/internal/util/logger"
)

var (
	auditLogRepository = &AuditLogRepository{}

	auditLogService    *AuditLogService
	auditLogController *AuditLogController

	servicesOnce sync.Once
	setupOnce    sync.Once
)

func setupServices() {
	servicesOnce.Do(func() {
		auditLogService = NewAuditLogService(auditLogRepository, logger.GetLogger())
		auditLogController = NewAuditLogController(auditLogService, projects_services.GetProjectService())
	})
}

func GetAuditLogService() *AuditLogService {
	setupServices()
	return auditLogService
}

func GetAuditLogController() *AuditLogController {
	setupServices()
	return auditLogController
}

// SetupDependencies registers the activity recorder on the project event hub.
func SetupDependencies() {
	setupOnce.Do(func() {
		projects_services.GetProjectEventHub().AddListener(GetAuditLogService())
	})
}
