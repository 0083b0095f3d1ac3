package usecase

import (
	"context"
	"errors"

	"clinic-portal/internal/converter"
	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrAuditLogNotFound = errors.New("audit log not found")
)

// AuditLogUsecase reads back the trail the AuditService writes.
type AuditLogUsecase interface {
	SearchAuditLogs(ctx context.Context, q dto.AuditLogQuery) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) SearchAuditLogs(ctx context.Context, q dto.AuditLogQuery) (*dto.AuditLogListResponse, error) {
	logs, total, err := u.auditLogRepo.Find(ctx, entity.AuditQuery{
		UserID: q.UserID,
		Entity: q.Entity,
		Action: q.Action,
		Offset: (q.Page - 1) * q.PerPage,
		Limit:  q.PerPage,
	})
	if err != nil {
		u.log.Warnf("Failed to search audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:       converter.AuditLogsToResponses(logs),
		Total:      total,
		Page:       q.Page,
		TotalPages: (total + q.PerPage - 1) / q.PerPage,
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log %d: %+v", id, err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
