package system_healthcheck

type HealthStatus string

const (
	HealthStatusOK          HealthStatus = "ok"
	HealthStatusDegraded    HealthStatus = "degraded"
	HealthStatusUnavailable HealthStatus = "unavailable"
)

type DiskUsage struct {
	Path        string  `json:"path"`
	TotalBytes  uint64  `json:"totalBytes"`
	FreeBytes   uint64  `json:"freeBytes"`
	UsedPercent float64 `json:"usedPercent"`
}

type HealthResponse struct {
	Status HealthStatus `json:"status"`
	Error  string       `json:"error,omitempty"`
	Disk   *DiskUsage   `json:"disk,omitempty"`
}
