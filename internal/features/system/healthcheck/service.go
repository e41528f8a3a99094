package system_healthcheck

import (
	"log/slog"

	"github.com/shirou/gopsutil/v4/disk"
)

const diskUsageWarningPercent = 95.0

type AvailabilityChecker interface {
	IsAvailable() error
}

type HealthcheckService struct {
	availability AvailabilityChecker
	diskPath     string
	logger       *slog.Logger
}

func NewHealthcheckService(availability AvailabilityChecker, diskPath string, logger *slog.Logger) *HealthcheckService {
	return &HealthcheckService{
		availability: availability,
		diskPath:     diskPath,
		logger:       logger,
	}
}

// GetHealth reports the service as unavailable when a backing store is down.
// A nearly full disk only marks it degraded.
func (s *HealthcheckService) GetHealth() *HealthResponse {
	response := &HealthResponse{Status: HealthStatusOK}

	if err := s.availability.IsAvailable(); err != nil {
		s.logger.Warn("health check failed", "error", err)
		response.Status = HealthStatusUnavailable
		response.Error = err.Error()
	}

	usage, err := disk.Usage(s.diskPath)
	if err != nil {
		s.logger.Warn("failed to read disk usage", "path", s.diskPath, "error", err)
		return response
	}

	response.Disk = &DiskUsage{
		Path:        usage.Path,
		TotalBytes:  usage.Total,
		FreeBytes:   usage.Free,
		UsedPercent: usage.UsedPercent,
	}

	if usage.UsedPercent >= diskUsageWarningPercent && response.Status == HealthStatusOK {
		response.Status = HealthStatusDegraded
	}

	return response
}
