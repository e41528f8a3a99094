package projects_models

import (
	"time"

	"github.com/google/uuid"
)

type TeamMember struct {
	ID         uuid.UUID `json:"id"         gorm:"column:id"`
	ProjectID  uuid.UUID `json:"projectId"  gorm:"column:project_id"`
	MemberID   uuid.UUID `json:"memberId"   gorm:"column:member_id"`
	AssignedAt time.Time `json:"assignedAt" gorm:"column:assigned_at"`
}

func (TeamMember) TableName() string {
	return "project_team_members"
}
