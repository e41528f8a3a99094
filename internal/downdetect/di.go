package downdetect

import (
	"sync"

	"agencyops/internal/cache"
	"agencyops/internal/storage"
)

var (
	downdetectService     *DowndetectService
	downdetectServiceOnce sync.Once
)

func GetDowndetectService() *DowndetectService {
	downdetectServiceOnce.Do(func() {
		downdetectService = NewDowndetectService(storage.Ping, cache.Ping)
	})

	return downdetectService
}
