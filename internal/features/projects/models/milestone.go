package projects_models

import (
	"time"

	projects_enums "agencyops/internal/features/projects/enums"

	"github.com/google/uuid"
)

var DefaultMilestoneTitles = []string{"Kickoff", "Design", "Development", "Review", "Delivery"}

type Milestone struct {
	ID             uuid.UUID                      `json:"id"             gorm:"column:id"`
	ProjectID      uuid.UUID                      `json:"projectId"      gorm:"column:project_id"`
	Title          string                         `json:"title"          gorm:"column:title"`
	Description    string                         `json:"description"    gorm:"column:description"`
	Status         projects_enums.MilestoneStatus `json:"status"         gorm:"column:status"`
	DueDate        *time.Time                     `json:"dueDate"        gorm:"column:due_date"`
	EstimatedHours float64                        `json:"estimatedHours" gorm:"column:estimated_hours"`
	OrderIndex     int                            `json:"orderIndex"     gorm:"column:order_index"`
	CreatedAt      time.Time                      `json:"createdAt"      gorm:"column:created_at"`
	UpdatedAt      time.Time                      `json:"updatedAt"      gorm:"column:updated_at"`
}

func (Milestone) TableName() string {
	return "milestones"
}

func (m *Milestone) IsCompleted() bool {
	return m.Status == projects_enums.MilestoneStatusCompleted
}

// NewDefaultMilestones returns the milestones every new project starts with,
// ordered from 1.
func NewDefaultMilestones(projectID uuid.UUID, now time.Time) []*Milestone {
	milestones := make([]*Milestone, 0, len(DefaultMilestoneTitles))

	for i, title := range DefaultMilestoneTitles {
		milestones = append(milestones, &Milestone{
			ID:         uuid.New(),
			ProjectID:  projectID,
			Title:      title,
			Status:     projects_enums.MilestoneStatusNotStarted,
			OrderIndex: i + 1,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	return milestones
}
