package audit_logs_testing

import (
	"sort"
	"sync"
	"time"

	"agencyops/internal/features/audit_logs"

	"github.com/google/uuid"
)

type InMemoryAuditLogRepository struct {
	mu        sync.RWMutex
	auditLogs []audit_logs.AuditLog
	FailWith  error
}

func NewInMemoryAuditLogRepository() *InMemoryAuditLogRepository {
	return &InMemoryAuditLogRepository{}
}

func (r *InMemoryAuditLogRepository) Create(auditLog *audit_logs.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}

	r.auditLogs = append(r.auditLogs, *auditLog)
	return nil
}

func (r *InMemoryAuditLogRepository) GetByProject(
	projectID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*audit_logs.AuditLogDTO, error) {
	matching := r.filter(projectID, beforeDate)

	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].CreatedAt.After(matching[j].CreatedAt)
	})

	if offset >= len(matching) {
		return []*audit_logs.AuditLogDTO{}, nil
	}

	end := min(offset+limit, len(matching))
	return matching[offset:end], nil
}

func (r *InMemoryAuditLogRepository) CountByProject(projectID uuid.UUID, beforeDate *time.Time) (int64, error) {
	return int64(len(r.filter(projectID, beforeDate))), nil
}

// ForProject returns the stored entries of a project in insertion order.
func (r *InMemoryAuditLogRepository) ForProject(projectID uuid.UUID) []audit_logs.AuditLog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []audit_logs.AuditLog{}
	for _, auditLog := range r.auditLogs {
		if auditLog.ProjectID == projectID {
			result = append(result, auditLog)
		}
	}

	return result
}

func (r *InMemoryAuditLogRepository) filter(projectID uuid.UUID, beforeDate *time.Time) []*audit_logs.AuditLogDTO {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matching := []*audit_logs.AuditLogDTO{}
	for _, auditLog := range r.auditLogs {
		if auditLog.ProjectID != projectID {
			continue
		}
		if beforeDate != nil && !auditLog.CreatedAt.Before(*beforeDate) {
			continue
		}

		matching = append(matching, &audit_logs.AuditLogDTO{
			ID:        auditLog.ID,
			ProjectID: auditLog.ProjectID,
			EventType: auditLog.EventType,
			Message:   auditLog.Message,
			CreatedAt: auditLog.CreatedAt,
		})
	}

	return matching
}
