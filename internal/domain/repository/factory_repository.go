package repository

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// FactoryRepository define el puerto de persistencia para fábricas.
type FactoryRepository interface {
	Create(ctx context.Context, factory *entity.Factory) error
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Factory, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Factory, error)
	Update(ctx context.Context, factory *entity.Factory) error
	Delete(ctx context.Context, id, companyID string) error
}
