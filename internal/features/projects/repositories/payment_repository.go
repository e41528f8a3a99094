package projects_repositories

import (
	"errors"

	projects_models "agencyops/internal/features/projects/models"
	"agencyops/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository struct{}

func (r *PaymentRepository) CreatePayment(payment *projects_models.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}

	return storage.GetDb().Create(payment).Error
}

func (r *PaymentRepository) GetPaymentByProjectID(projectID uuid.UUID) (*projects_models.Payment, error) {
	var payment projects_models.Payment

	if err := storage.GetDb().Where("project_id = ?", projectID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &payment, nil
}

func (r *PaymentRepository) UpdatePayment(payment *projects_models.Payment) error {
	return storage.GetDb().Save(payment).Error
}
