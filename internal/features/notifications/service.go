package notifications

import (
	"log/slog"
	"time"

	"agencyops/internal/util/metrics"

	"github.com/google/uuid"
)

const NotificationCreatedRoutingKey = "notification.created"

type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type NotificationService struct {
	notificationStore NotificationStore
	publisher         EventPublisher
	logger            *slog.Logger
}

func NewNotificationService(store NotificationStore, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		notificationStore: store,
		logger:            logger,
	}
}

// SetEventPublisher enables publishing of stored notifications to the
// delivery consumer. Without a publisher rows are only stored.
func (s *NotificationService) SetEventPublisher(publisher EventPublisher) {
	s.publisher = publisher
}

// Emit stores an unread notification. Failures are logged and never returned
// to the caller.
func (s *NotificationService) Emit(
	recipientID uuid.UUID,
	projectID uuid.UUID,
	message string,
	category NotificationCategory,
) {
	notification := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		ProjectID:   projectID,
		Message:     message,
		Category:    category,
		IsRead:      false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.notificationStore.Create(notification); err != nil {
		metrics.RecordNotification(string(category), false)
		s.logger.Error(
			"failed to create notification",
			"recipientId", recipientID,
			"projectId", projectID,
			"category", category,
			"error", err,
		)
		return
	}

	metrics.RecordNotification(string(category), true)

	if s.publisher == nil {
		return
	}

	event := &NotificationCreatedEvent{
		NotificationID: notification.ID,
		RecipientID:    notification.RecipientID,
		ProjectID:      notification.ProjectID,
		Message:        notification.Message,
		Category:       notification.Category,
		CreatedAt:      notification.CreatedAt,
	}

	if err := s.publisher.Publish(NotificationCreatedRoutingKey, event); err != nil {
		s.logger.Warn("failed to publish notification event", "notificationId", notification.ID, "error", err)
	}
}

func (s *NotificationService) GetUserNotifications(
	recipientID uuid.UUID,
	request *GetNotificationsRequest,
) (*GetNotificationsResponse, error) {
	limit := request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	offset := max(request.Offset, 0)

	notifications, err := s.notificationStore.GetByRecipient(recipientID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	total, err := s.notificationStore.CountByRecipient(recipientID, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetNotificationsResponse{
		Notifications: notifications,
		Total:         total,
		Limit:         limit,
		Offset:        offset,
	}, nil
}
