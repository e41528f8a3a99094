package projects_dto

import (
	"time"

	projects_enums "agencyops/internal/features/projects/enums"
	projects_models "agencyops/internal/features/projects/models"
	users_dto "agencyops/internal/features/users/dto"

	"github.com/google/uuid"
)

// CreateProjectRequestDTO selects an existing client through ClientID or
// provisions one through NewClient. Both are ignored when a client creates
// the project for themselves.
type CreateProjectRequestDTO struct {
	Title          string                              `json:"title"`
	Description    string                              `json:"description"`
	Requirements   []string                            `json:"requirements"`
	Category       string                              `json:"category"`
	ServiceType    string                              `json:"serviceType"`
	Priority       projects_enums.ProjectPriority      `json:"priority"`
	Budget         *float64                            `json:"budget"`
	Deadline       *time.Time                          `json:"deadline"`
	ClientID       *uuid.UUID                          `json:"clientId"`
	NewClient      *users_dto.ProvisionClientRequestDTO `json:"newClient"`
	AttachmentPath *string                             `json:"attachmentPath"`
}

type ChangeStatusRequestDTO struct {
	Status projects_enums.ProjectStatus `json:"status" binding:"required"`
}

type ChangePriorityRequestDTO struct {
	Priority projects_enums.ProjectPriority `json:"priority" binding:"required"`
}

type AssignClientRequestDTO struct {
	ClientID uuid.UUID `json:"clientId" binding:"required"`
}

// UpdateProjectDetailsRequestDTO is a partial update, nil fields are kept.
type UpdateProjectDetailsRequestDTO struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Requirements *[]string  `json:"requirements"`
	Budget       *float64   `json:"budget"`
	Deadline     *time.Time `json:"deadline"`
}

type ListProjectsResponseDTO struct {
	Projects []*projects_models.Project `json:"projects"`
}

type AddMilestoneRequestDTO struct {
	Title          string                         `json:"title"`
	Description    string                         `json:"description"`
	DueDate        *time.Time                     `json:"dueDate"`
	EstimatedHours float64                        `json:"estimatedHours"`
	Status         projects_enums.MilestoneStatus `json:"status"`
}

type ChangeMilestoneStatusRequestDTO struct {
	Status projects_enums.MilestoneStatus `json:"status"`
}

type MilestoneStatusResponseDTO struct {
	Milestone       *projects_models.Milestone `json:"milestone"`
	ProjectProgress int                        `json:"projectProgress"`
}

type ListMilestonesResponseDTO struct {
	Milestones []*projects_models.Milestone `json:"milestones"`
}

type UpdatePaymentRequestDTO struct {
	Status        *projects_enums.PaymentStatus `json:"status"`
	TotalAmount   *float64                      `json:"totalAmount"`
	AmountPaid    *float64                      `json:"amountPaid"`
	Notes         *string                       `json:"notes"`
	PaymentDate   *time.Time                    `json:"paymentDate"`
	InvoiceNumber *string                       `json:"invoiceNumber"`
}

type PaymentResponseDTO struct {
	ID            uuid.UUID                    `json:"id"`
	ProjectID     uuid.UUID                    `json:"projectId"`
	Status        projects_enums.PaymentStatus `json:"status"`
	TotalAmount   float64                      `json:"totalAmount"`
	AmountPaid    float64                      `json:"amountPaid"`
	Balance       float64                      `json:"balance"`
	InvoiceNumber string                       `json:"invoiceNumber"`
	Notes         string                       `json:"notes"`
	PaymentDate   *time.Time                   `json:"paymentDate"`
	UpdatedAt     time.Time                    `json:"updatedAt"`
}

func NewPaymentResponseDTO(payment *projects_models.Payment) *PaymentResponseDTO {
	return &PaymentResponseDTO{
		ID:            payment.ID,
		ProjectID:     payment.ProjectID,
		Status:        payment.Status,
		TotalAmount:   payment.TotalAmount,
		AmountPaid:    payment.AmountPaid,
		Balance:       payment.Balance(),
		InvoiceNumber: payment.InvoiceNumber,
		Notes:         payment.Notes,
		PaymentDate:   payment.PaymentDate,
		UpdatedAt:     payment.UpdatedAt,
	}
}

// InvoiceDocument is what an exporter renders. Producing the file itself is
// up to the caller.
type InvoiceDocument struct {
	InvoiceNumber string                       `json:"invoiceNumber"`
	IssuedAt      time.Time                    `json:"issuedAt"`
	ProjectID     uuid.UUID                    `json:"projectId"`
	ProjectTitle  string                       `json:"projectTitle"`
	ClientID      *uuid.UUID                   `json:"clientId"`
	Status        projects_enums.PaymentStatus `json:"status"`
	TotalAmount   float64                      `json:"totalAmount"`
	AmountPaid    float64                      `json:"amountPaid"`
	Balance       float64                      `json:"balance"`
	Notes         string                       `json:"notes"`
	PaymentDate   *time.Time                   `json:"paymentDate"`
}

type NextMilestoneDTO struct {
	ID      uuid.UUID                      `json:"id"`
	Title   string                         `json:"title"`
	Status  projects_enums.MilestoneStatus `json:"status"`
	DueDate *time.Time                     `json:"dueDate"`
}

type ProgressSummaryDTO struct {
	ProjectID               uuid.UUID                    `json:"projectId"`
	ProjectTitle            string                       `json:"projectTitle"`
	OverallProgress         int                          `json:"overallProgress"`
	MilestonesCompleted     int                          `json:"milestonesCompleted"`
	TotalMilestones         int                          `json:"totalMilestones"`
	NextIncompleteMilestone *NextMilestoneDTO            `json:"nextIncompleteMilestone"`
	PaymentStatus           projects_enums.PaymentStatus `json:"paymentStatus"`
	AmountPaid              float64                      `json:"amountPaid"`
	TotalAmount             float64                      `json:"totalAmount"`
	Balance                 float64                      `json:"balance"`
}

type AssignMemberRequestDTO struct {
	MemberID uuid.UUID `json:"memberId"`
}

type ListTeamResponseDTO struct {
	Members []*projects_models.TeamMember `json:"members"`
}
