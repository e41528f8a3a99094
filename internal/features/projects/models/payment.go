package projects_models

import (
	"fmt"
	"strings"
	"time"

	projects_enums "agencyops/internal/features/projects/enums"

	"github.com/google/uuid"
)

type Payment struct {
	ID            uuid.UUID                    `json:"id"            gorm:"column:id"`
	ProjectID     uuid.UUID                    `json:"projectId"     gorm:"column:project_id"`
	Status        projects_enums.PaymentStatus `json:"status"        gorm:"column:status"`
	TotalAmount   float64                      `json:"totalAmount"   gorm:"column:total_amount"`
	AmountPaid    float64                      `json:"amountPaid"    gorm:"column:amount_paid"`
	InvoiceNumber string                       `json:"invoiceNumber" gorm:"column:invoice_number"`
	Notes         string                       `json:"notes"         gorm:"column:notes"`
	PaymentDate   *time.Time                   `json:"paymentDate"   gorm:"column:payment_date"`
	CreatedAt     time.Time                    `json:"createdAt"     gorm:"column:created_at"`
	UpdatedAt     time.Time                    `json:"updatedAt"     gorm:"column:updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// Balance is negative when the client has paid more than the total.
func (p *Payment) Balance() float64 {
	return p.TotalAmount - p.AmountPaid
}

// NewInvoiceNumber builds INV-<utc timestamp>-<project id prefix>.
func NewInvoiceNumber(projectID uuid.UUID, now time.Time) string {
	return fmt.Sprintf(
		"INV-%s-%s",
		now.UTC().Format("20060102150405"),
		strings.ToUpper(projectID.String()[:8]),
	)
}
