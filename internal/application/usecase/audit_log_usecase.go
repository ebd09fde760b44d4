package usecase

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// AuditLogUseCase consulta de la bitácora de auditoría de la empresa.
type AuditLogUseCase struct {
	repo repository.AuditLogRepository
}

// NewAuditLogUseCase construye el caso de uso.
func NewAuditLogUseCase(repo repository.AuditLogRepository) *AuditLogUseCase {
	return &AuditLogUseCase{repo: repo}
}

// List devuelve los registros más recientes primero.
func (uc *AuditLogUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.AuditLogListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.AuditLogResponse{
			ID:                 l.ID,
			UserID:             l.UserID,
			ActionType:         l.ActionType,
			TargetResourceID:   l.TargetResourceID,
			TargetResourceType: l.TargetResourceType,
			AfterValue:         l.AfterValue,
			IPAddress:          l.IPAddress,
			CreatedAt:          l.CreatedAt,
		})
	}
	return &dto.AuditLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
