package audit_logs

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is one entry of a project's staff-facing activity trail.
type AuditLog struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	ProjectID uuid.UUID `json:"projectId" gorm:"column:project_id"`
	EventType string    `json:"eventType" gorm:"column:event_type"`
	Message   string    `json:"message"   gorm:"column:message"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
