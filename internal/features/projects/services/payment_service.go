package projects_services

import (
	"log/slog"
	"strings"
	"time"

	projects_dto "agencyops/internal/features/projects/dto"
	projects_enums "agencyops/internal/features/projects/enums"
	projects_interfaces "agencyops/internal/features/projects/interfaces"
	projects_models "agencyops/internal/features/projects/models"
	errors_utils "agencyops/internal/util/errors"

	"github.com/google/uuid"
)

// PaymentService keeps the single payment record of each project. Amounts
// are recorded as given: overpayment is allowed and the status is never
// derived from them.
type PaymentService struct {
	paymentRepository projects_interfaces.PaymentRepository
	projectRepository projects_interfaces.ProjectRepository
	eventHub          *ProjectEventHub
	logger            *slog.Logger
}

func NewPaymentService(
	paymentRepository projects_interfaces.PaymentRepository,
	projectRepository projects_interfaces.ProjectRepository,
	eventHub *ProjectEventHub,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepository: paymentRepository,
		projectRepository: projectRepository,
		eventHub:          eventHub,
		logger:            logger,
	}
}

func (s *PaymentService) InitializePayment(projectID uuid.UUID, totalAmount float64) (*projects_models.Payment, error) {
	if totalAmount < 0 {
		return nil, errors_utils.NewValidationError(
			errors_utils.CodeNegative, "totalAmount", "total amount cannot be negative",
		)
	}

	if _, err := s.getProject(projectID); err != nil {
		return nil, err
	}

	existingPayment, err := s.findPayment(projectID)
	if err != nil {
		return nil, err
	}
	if existingPayment != nil {
		return nil, errors_utils.NewConflictError("project already has a payment record")
	}

	now := time.Now().UTC()
	payment := &projects_models.Payment{
		ID:            uuid.New(),
		ProjectID:     projectID,
		Status:        projects_enums.PaymentStatusPending,
		TotalAmount:   totalAmount,
		AmountPaid:    0,
		InvoiceNumber: projects_models.NewInvoiceNumber(projectID, now),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.paymentRepository.CreatePayment(payment); err != nil {
		return nil, errors_utils.NewDependencyError("create payment", err)
	}

	return payment, nil
}

func (s *PaymentService) GetPayment(projectID uuid.UUID) (*projects_dto.PaymentResponseDTO, error) {
	payment, err := s.getPayment(projectID)
	if err != nil {
		return nil, err
	}

	return projects_dto.NewPaymentResponseDTO(payment), nil
}

// UpdatePayment replaces the provided fields and notifies the assigned client
// about the resulting status.
func (s *PaymentService) UpdatePayment(
	projectID uuid.UUID,
	request *projects_dto.UpdatePaymentRequestDTO,
) (*projects_dto.PaymentResponseDTO, error) {
	if err := validateUpdatePaymentRequest(request); err != nil {
		return nil, err
	}

	payment, err := s.getPayment(projectID)
	if err != nil {
		return nil, err
	}

	if request.Status != nil {
		payment.Status = *request.Status
	}
	if request.TotalAmount != nil {
		payment.TotalAmount = *request.TotalAmount
	}
	if request.AmountPaid != nil {
		payment.AmountPaid = *request.AmountPaid
	}
	if request.Notes != nil {
		payment.Notes = *request.Notes
	}
	if request.PaymentDate != nil {
		paymentDate := *request.PaymentDate
		payment.PaymentDate = &paymentDate
	}
	if request.InvoiceNumber != nil {
		payment.InvoiceNumber = strings.TrimSpace(*request.InvoiceNumber)
	}

	payment.UpdatedAt = time.Now().UTC()

	if err := s.paymentRepository.UpdatePayment(payment); err != nil {
		return nil, errors_utils.NewDependencyError("update payment", err)
	}

	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil || project == nil {
		s.logger.Warn("payment updated but project could not be loaded for notification",
			"projectId", projectID, "error", err)
	} else {
		s.eventHub.Publish(projects_interfaces.ProjectEvent{
			Type:    projects_interfaces.ProjectEventPaymentUpdated,
			Project: project,
			Payment: payment,
		})
	}

	return projects_dto.NewPaymentResponseDTO(payment), nil
}

func (s *PaymentService) GenerateInvoiceSnapshot(projectID uuid.UUID) (*projects_dto.InvoiceDocument, error) {
	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}

	payment, err := s.getPayment(projectID)
	if err != nil {
		return nil, err
	}

	return &projects_dto.InvoiceDocument{
		InvoiceNumber: payment.InvoiceNumber,
		IssuedAt:      time.Now().UTC(),
		ProjectID:     project.ID,
		ProjectTitle:  project.Title,
		ClientID:      project.ClientID,
		Status:        payment.Status,
		TotalAmount:   payment.TotalAmount,
		AmountPaid:    payment.AmountPaid,
		Balance:       payment.Balance(),
		Notes:         payment.Notes,
		PaymentDate:   payment.PaymentDate,
	}, nil
}

func (s *PaymentService) findPayment(projectID uuid.UUID) (*projects_models.Payment, error) {
	payment, err := s.paymentRepository.GetPaymentByProjectID(projectID)
	if err != nil {
		return nil, errors_utils.NewDependencyError("get payment", err)
	}

	return payment, nil
}

func (s *PaymentService) getPayment(projectID uuid.UUID) (*projects_models.Payment, error) {
	payment, err := s.findPayment(projectID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, errors_utils.NewNotFoundError("payment", projectID)
	}

	return payment, nil
}

func (s *PaymentService) getProject(projectID uuid.UUID) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, errors_utils.NewDependencyError("get project", err)
	}
	if project == nil {
		return nil, errors_utils.NewNotFoundError("project", projectID)
	}

	return project, nil
}
