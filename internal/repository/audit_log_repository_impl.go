package repository

import (
	"context"
	"sync"

	"clinic-portal/internal/domain/entity"
	domainRepo "clinic-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// auditLogRepository writes every entry to the log stream and keeps the
// most recent ones in memory for the audit view.
type auditLogRepository struct {
	log     *logrus.Logger
	mu      sync.RWMutex
	entries []entity.AuditLog
	limit   int
	nextID  int64
}

func NewAuditLogRepository(log *logrus.Logger, limit int) domainRepo.AuditLogRepository {
	if limit <= 0 {
		limit = 500
	}
	return &auditLogRepository{log: log, limit: limit}
}

func (r *auditLogRepository) Create(_ context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	r.nextID++
	log.ID = r.nextID
	r.entries = append(r.entries, *log)
	if len(r.entries) > r.limit {
		r.entries = r.entries[len(r.entries)-r.limit:]
	}
	r.mu.Unlock()

	r.log.WithFields(logrus.Fields{
		"audit_id":  log.ID,
		"user_id":   log.UserID,
		"action":    log.Action,
		"entity":    log.Entity,
		"entity_id": log.EntityID,
		"old_value": log.OldValue,
		"new_value": log.NewValue,
	}).Info("audit")
	return nil
}

func (r *auditLogRepository) Find(_ context.Context, q entity.AuditQuery) ([]entity.AuditLog, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		logs  []entity.AuditLog
		total int
	)
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if !q.Matches(e) {
			continue
		}
		if total >= q.Offset && (q.Limit <= 0 || len(logs) < q.Limit) {
			logs = append(logs, e)
		}
		total++
	}
	if logs == nil {
		logs = []entity.AuditLog{}
	}
	return logs, total, nil
}

func (r *auditLogRepository) FindByID(_ context.Context, id int64) (*entity.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}
