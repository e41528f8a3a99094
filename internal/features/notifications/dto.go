package notifications

import (
	"time"

	"github.com/google/uuid"
)

type GetNotificationsRequest struct {
	Limit      int        `form:"limit"      json:"limit"`
	Offset     int        `form:"offset"     json:"offset"`
	BeforeDate *time.Time `form:"-"          json:"beforeDate"`
}

type GetNotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
	Total         int64           `json:"total"`
	Limit         int             `json:"limit"`
	Offset        int             `json:"offset"`
}

// NotificationCreatedEvent is published for the outbound delivery consumer.
type NotificationCreatedEvent struct {
	NotificationID uuid.UUID            `json:"notificationId"`
	RecipientID    uuid.UUID            `json:"recipientId"`
	ProjectID      uuid.UUID            `json:"projectId"`
	Message        string               `json:"message"`
	Category       NotificationCategory `json:"category"`
	CreatedAt      time.Time            `json:"createdAt"`
}
