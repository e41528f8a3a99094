package projects_services

import (
	"strings"

	projects_dto "agencyops/internal/features/projects/dto"
	errors_utils "agencyops/internal/util/errors"
)

func validateCreateProjectRequest(request *projects_dto.CreateProjectRequestDTO) error {
	if strings.TrimSpace(request.Title) == "" {
		return errors_utils.NewValidationError(errors_utils.CodeRequired, "title", "title is required")
	}

	if strings.TrimSpace(request.Description) == "" {
		return errors_utils.NewValidationError(errors_utils.CodeRequired, "description", "description is required")
	}

	if strings.TrimSpace(request.ServiceType) == "" {
		return errors_utils.NewValidationError(errors_utils.CodeRequired, "serviceType", "service type is required")
	}

	if request.Priority != "" && !request.Priority.IsValid() {
		return errors_utils.NewValidationError(
			errors_utils.CodeInvalidValue, "priority", "unknown project priority: "+string(request.Priority),
		)
	}

	if request.Budget != nil && *request.Budget < 0 {
		return errors_utils.NewValidationError(errors_utils.CodeNegative, "budget", "budget cannot be negative")
	}

	return nil
}

func validateUpdateDetailsRequest(request *projects_dto.UpdateProjectDetailsRequestDTO) error {
	if request.Title != nil && strings.TrimSpace(*request.Title) == "" {
		return errors_utils.NewValidationError(errors_utils.CodeRequired, "title", "title cannot be empty")
	}

	if request.Description != nil && strings.TrimSpace(*request.Description) == "" {
		return errors_utils.NewValidationError(errors_utils.CodeRequired, "description", "description cannot be empty")
	}

	if request.Budget != nil && *request.Budget < 0 {
		return errors_utils.NewValidationError(errors_utils.CodeNegative, "budget", "budget cannot be negative")
	}

	return nil
}

func validateAddMilestoneRequest(request *projects_dto.AddMilestoneRequestDTO) error {
	if strings.TrimSpace(request.Title) == "" {
		return errors_utils.NewValidationError(errors_utils.CodeRequired, "title", "milestone title is required")
	}

	if request.Status != "" && !request.Status.IsValid() {
		return errors_utils.NewValidationError(
			errors_utils.CodeInvalidValue, "status", "unknown milestone status: "+string(request.Status),
		)
	}

	if request.EstimatedHours < 0 {
		return errors_utils.NewValidationError(
			errors_utils.CodeNegative, "estimatedHours", "estimated hours cannot be negative",
		)
	}

	return nil
}

func validateUpdatePaymentRequest(request *projects_dto.UpdatePaymentRequestDTO) error {
	if request.Status != nil && !request.Status.IsValid() {
		return errors_utils.NewValidationError(
			errors_utils.CodeInvalidValue, "status", "unknown payment status: "+string(*request.Status),
		)
	}

	if request.TotalAmount != nil && *request.TotalAmount < 0 {
		return errors_utils.NewValidationError(
			errors_utils.CodeNegative, "totalAmount", "total amount cannot be negative",
		)
	}

	if request.AmountPaid != nil && *request.AmountPaid < 0 {
		return errors_utils.NewValidationError(
			errors_utils.CodeNegative, "amountPaid", "amount paid cannot be negative",
		)
	}

	if request.InvoiceNumber != nil && strings.TrimSpace(*request.InvoiceNumber) == "" {
		return errors_utils.NewValidationError(
			errors_utils.CodeRequired, "invoiceNumber", "invoice number cannot be empty",
		)
	}

	return nil
}
