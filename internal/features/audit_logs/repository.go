package audit_logs

import (
	"time"

	"agencyops/internal/storage"

	"github.com/google/uuid"
)

type AuditLogStore interface {
	Create(auditLog *AuditLog) error
	GetByProject(projectID uuid.UUID, limit, offset int, beforeDate *time.Time) ([]*AuditLogDTO, error)
	CountByProject(projectID uuid.UUID, beforeDate *time.Time) (int64, error)
}

type AuditLogRepository struct{}

func (r *AuditLogRepository) Create(auditLog *AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}

	return storage.GetDb().Create(auditLog).Error
}

func (r *AuditLogRepository) GetByProject(
	projectID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, error) {
	var auditLogs = make([]*AuditLogDTO, 0)

	sql := `
		SELECT
			al.id,
			al.project_id,
			al.event_type,
			al.message,
			al.created_at,
			p.title as project_title
		FROM audit_logs al
		LEFT JOIN projects p ON al.project_id = p.id
		WHERE al.project_id = ?`

	args := []any{projectID}

	if beforeDate != nil {
		sql += " AND al.created_at < ?"
		args = append(args, *beforeDate)
	}

	sql += " ORDER BY al.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	err := storage.GetDb().Raw(sql, args...).Scan(&auditLogs).Error

	return auditLogs, err
}

func (r *AuditLogRepository) CountByProject(projectID uuid.UUID, beforeDate *time.Time) (int64, error) {
	var count int64
	query := storage.GetDb().Model(&AuditLog{}).Where("project_id = ?", projectID)

	if beforeDate != nil {
		query = query.Where("created_at < ?", *beforeDate)
	}

	err := query.Count(&count).Error
	return count, err
}
