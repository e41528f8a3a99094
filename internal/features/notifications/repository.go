package notifications

import (
	"time"

	"agencyops/internal/storage"

	"github.com/google/uuid"
)

type NotificationStore interface {
	Create(notification *Notification) error
	GetByRecipient(recipientID uuid.UUID, limit, offset int, beforeDate *time.Time) ([]*Notification, error)
	CountByRecipient(recipientID uuid.UUID, beforeDate *time.Time) (int64, error)
}

type NotificationRepository struct{}

func (r *NotificationRepository) Create(notification *Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}

	return storage.GetDb().Create(notification).Error
}

func (r *NotificationRepository) GetByRecipient(
	recipientID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*Notification, error) {
	notifications := make([]*Notification, 0)

	query := storage.GetDb().Where("recipient_id = ?", recipientID)
	if beforeDate != nil {
		query = query.Where("created_at < ?", *beforeDate)
	}

	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error

	return notifications, err
}

func (r *NotificationRepository) CountByRecipient(recipientID uuid.UUID, beforeDate *time.Time) (int64, error) {
	var count int64

	query := storage.GetDb().Model(&Notification{}).Where("recipient_id = ?", recipientID)
	if beforeDate != nil {
		query = query.Where("created_at < ?", *beforeDate)
	}

	err := query.Count(&count).Error
	return count, err
}
