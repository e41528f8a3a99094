package projects_models

import (
	"strings"
	"time"

	projects_enums "agencyops/internal/features/projects/enums"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	Title       string    `json:"title"       gorm:"column:title"`
	Description string    `json:"description" gorm:"column:description"`
	Category    string    `json:"category"    gorm:"column:category"`
	ServiceType string    `json:"serviceType" gorm:"column:service_type"`

	RequirementsRaw string   `json:"-"            gorm:"column:requirements_raw"`
	Requirements    []string `json:"requirements" gorm:"-"`

	Priority projects_enums.ProjectPriority `json:"priority" gorm:"column:priority"`
	Status   projects_enums.ProjectStatus   `json:"status"   gorm:"column:status"`
	Budget   *float64                       `json:"budget"   gorm:"column:budget"`
	Deadline *time.Time                     `json:"deadline" gorm:"column:deadline"`

	// cached percentage, recomputed after every milestone change
	Progress int `json:"progress" gorm:"column:progress"`

	ClientID       *uuid.UUID `json:"clientId"       gorm:"column:client_id"`
	AssignedAt     *time.Time `json:"assignedAt"     gorm:"column:assigned_at"`
	AttachmentPath *string    `json:"attachmentPath" gorm:"column:attachment_path"`

	CreatedBy uuid.UUID `json:"createdBy" gorm:"column:created_by"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) HasClient() bool {
	return p.ClientID != nil && *p.ClientID != uuid.Nil
}

func (p *Project) IsOwnedByClient(clientID uuid.UUID) bool {
	return p.HasClient() && *p.ClientID == clientID
}

// Requirements are stored one per line.
func (p *Project) BeforeSave(tx *gorm.DB) error {
	if len(p.Requirements) > 0 {
		p.RequirementsRaw = strings.Join(p.Requirements, "\n")
	} else {
		p.RequirementsRaw = ""
	}

	return nil
}

func (p *Project) AfterFind(tx *gorm.DB) error {
	p.Requirements = SplitRequirements(p.RequirementsRaw)
	return nil
}

func SplitRequirements(raw string) []string {
	requirements := []string{}

	for line := range strings.SplitSeq(raw, "\n") {
		if requirement := strings.TrimSpace(line); requirement != "" {
			requirements = append(requirements, requirement)
		}
	}

	return requirements
}

// CleanRequirements trims entries and drops blank ones.
func CleanRequirements(requirements []string) []string {
	cleaned := make([]string, 0, len(requirements))

	for _, requirement := range requirements {
		if trimmed := strings.TrimSpace(requirement); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	return cleaned
}
