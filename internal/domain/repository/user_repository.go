package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios.
// Las lecturas por ID siempre se filtran por company_id para no cruzar tenants.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id, companyID string) error
}
