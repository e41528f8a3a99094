package audit_logs

import (
	"time"

	"github.com/google/uuid"
)

type GetAuditLogsRequest struct {
	Limit      int        `form:"limit"  json:"limit"`
	Offset     int        `form:"offset" json:"offset"`
	BeforeDate *time.Time `form:"-"      json:"beforeDate"`
}

type GetAuditLogsResponse struct {
	AuditLogs []*AuditLogDTO `json:"auditLogs"`
	Total     int64          `json:"total"`
	Limit     int            `json:"limit"`
	Offset    int            `json:"offset"`
}

type AuditLogDTO struct {
	ID           uuid.UUID `json:"id"           gorm:"column:id"`
	ProjectID    uuid.UUID `json:"projectId"    gorm:"column:project_id"`
	EventType    string    `json:"eventType"    gorm:"column:event_type"`
	Message      string    `json:"message"      gorm:"column:message"`
	CreatedAt    time.Time `json:"createdAt"    gorm:"column:created_at"`
	ProjectTitle *string   `json:"projectTitle" gorm:"column:project_title"`
}
