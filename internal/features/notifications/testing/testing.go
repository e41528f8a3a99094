package notifications_testing

import (
	"sort"
	"sync"
	"time"

	"agencyops/internal/features/notifications"

	"github.com/google/uuid"
)

type InMemoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications []notifications.Notification
	FailWith      error
}

func NewInMemoryNotificationRepository() *InMemoryNotificationRepository {
	return &InMemoryNotificationRepository{}
}

func (r *InMemoryNotificationRepository) Create(notification *notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}

	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *InMemoryNotificationRepository) GetByRecipient(
	recipientID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*notifications.Notification, error) {
	matching := r.filter(recipientID, beforeDate)

	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].CreatedAt.After(matching[j].CreatedAt)
	})

	if offset >= len(matching) {
		return []*notifications.Notification{}, nil
	}

	end := min(offset+limit, len(matching))
	return matching[offset:end], nil
}

func (r *InMemoryNotificationRepository) CountByRecipient(recipientID uuid.UUID, beforeDate *time.Time) (int64, error) {
	return int64(len(r.filter(recipientID, beforeDate))), nil
}

// ForRecipient returns every stored notification addressed to recipientID in
// creation order.
func (r *InMemoryNotificationRepository) ForRecipient(recipientID uuid.UUID) []notifications.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []notifications.Notification{}
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID {
			result = append(result, notification)
		}
	}

	return result
}

func (r *InMemoryNotificationRepository) All() []notifications.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]notifications.Notification{}, r.notifications...)
}

func (r *InMemoryNotificationRepository) filter(
	recipientID uuid.UUID,
	beforeDate *time.Time,
) []*notifications.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matching := []*notifications.Notification{}
	for i := range r.notifications {
		notification := r.notifications[i]
		if notification.RecipientID != recipientID {
			continue
		}
		if beforeDate != nil && !notification.CreatedAt.Before(*beforeDate) {
			continue
		}

		matching = append(matching, &notification)
	}

	return matching
}

type PublishedEvent struct {
	RoutingKey string
	Payload    any
}

type RecordingPublisher struct {
	mu       sync.Mutex
	Events   []PublishedEvent
	FailWith error
}

func (p *RecordingPublisher) Publish(routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.FailWith != nil {
		return p.FailWith
	}

	p.Events = append(p.Events, PublishedEvent{RoutingKey: routingKey, Payload: payload})
	return nil
}
