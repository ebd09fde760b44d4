package repository

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para empresas (tenants).
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByEmail(ctx context.Context, email string) (*entity.Company, error)
}
