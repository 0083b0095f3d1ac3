package repository

import (
	"context"

	"clinic-portal/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	// Find returns one page of matching entries, newest first, and the
	// number of matches overall.
	Find(ctx context.Context, q entity.AuditQuery) ([]entity.AuditLog, int, error)
	FindByID(ctx context.Context, id int64) (*entity.AuditLog, error)
}
