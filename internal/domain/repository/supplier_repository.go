package repository

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Supplier, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id, companyID string) error
}
