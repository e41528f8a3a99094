package system_healthcheck

import (
	"sync"

	"agencyops/internal/config"
	"agencyops/internal/downdetect"
	"agencyops/internal/util/logger"
)

var (
	healthcheckController     *HealthcheckController
	healthcheckControllerOnce sync.Once
)

func GetHealthcheckController() *HealthcheckController {
	healthcheckControllerOnce.Do(func() {
		healthcheckService := NewHealthcheckService(
			downdetect.GetDowndetectService(),
			config.GetEnv().BackendRootPath,
			logger.GetLogger(),
		)
		healthcheckController = NewHealthcheckController(healthcheckService)
	})

	return healthcheckController
}
