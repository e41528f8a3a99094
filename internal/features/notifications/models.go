package notifications

import (
	"time"

	"github.com/google/uuid"
)

type NotificationCategory string

const (
	NotificationCategoryProjectCreated NotificationCategory = "project_created"
	NotificationCategoryProjectUpdate  NotificationCategory = "project_update"
)

// Notification is immutable after creation except for IsRead, which belongs
// to the delivery side.
type Notification struct {
	ID          uuid.UUID            `json:"id"          gorm:"column:id"`
	RecipientID uuid.UUID            `json:"recipientId" gorm:"column:recipient_id"`
	ProjectID   uuid.UUID            `json:"projectId"   gorm:"column:project_id"`
	Message     string               `json:"message"     gorm:"column:message"`
	Category    NotificationCategory `json:"category"    gorm:"column:category"`
	IsRead      bool                 `json:"isRead"      gorm:"column:is_read"`
	CreatedAt   time.Time            `json:"createdAt"   gorm:"column:created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
