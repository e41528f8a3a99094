package downdetect

import (
	"fmt"
)

// Check probes one backing service.
type Check func() error

type DowndetectService struct {
	checkDatabase Check
	checkCache    Check
}

func NewDowndetectService(checkDatabase, checkCache Check) *DowndetectService {
	return &DowndetectService{
		checkDatabase: checkDatabase,
		checkCache:    checkCache,
	}
}

func (s *DowndetectService) IsAvailable() error {
	if err := s.checkDatabase(); err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	if err := s.testCacheConnection(); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}

func (s *DowndetectService) testCacheConnection() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache connection test panicked: %v", r)
		}
	}()

	return s.checkCache()
}
