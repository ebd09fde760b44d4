package repository

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// AuditLogRepository bitácora de auditoría (append-only).
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.AuditLog, error)
}
