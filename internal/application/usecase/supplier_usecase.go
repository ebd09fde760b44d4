package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo  repository.SupplierRepository
	trace ports.TraceInvalidator
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// WithTraceInvalidator descarta las consultas públicas cacheadas al editar o borrar.
func (uc *SupplierUseCase) WithTraceInvalidator(inv ports.TraceInvalidator) *SupplierUseCase {
	uc.trace = inv
	return uc
}

// Create crea un proveedor de la empresa.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	now := time.Now().UTC()
	supplier := &entity.Supplier{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Name:           in.Name,
		Address:        in.Address,
		Country:        in.Country,
		ContactPerson:  in.ContactPerson,
		ContactEmail:   in.ContactEmail,
		ContactPhone:   in.ContactPhone,
		Certifications: in.Certifications,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor de la empresa.
func (uc *SupplierUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Update actualiza un proveedor (merge parcial).
func (uc *SupplierUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	if in.Country != nil {
		supplier.Country = *in.Country
	}
	if in.ContactPerson != nil {
		supplier.ContactPerson = *in.ContactPerson
	}
	if in.ContactEmail != nil {
		supplier.ContactEmail = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		supplier.ContactPhone = *in.ContactPhone
	}
	if in.Certifications != nil {
		supplier.Certifications = *in.Certifications
	}
	if in.IsActive != nil {
		supplier.IsActive = *in.IsActive
	}
	supplier.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	uc.invalidateTrace(ctx, supplier.ID)
	return toSupplierResponse(supplier), nil
}

// List lista proveedores por empresa con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un proveedor y sus lotes de materia prima.
func (uc *SupplierUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id, companyID); err != nil {
		return err
	}
	uc.invalidateTrace(ctx, id)
	return nil
}

// invalidateTrace es best-effort: el cambio ya está confirmado y el TTL de la caché acota la ventana.
func (uc *SupplierUseCase) invalidateTrace(ctx context.Context, id string) {
	if uc.trace != nil {
		_ = uc.trace.Invalidate(ctx, ports.SupplierTraceTag(id))
	}
}

func (uc *SupplierUseCase) get(ctx context.Context, companyID, id string) (*entity.Supplier, error) {
	supplier, err := uc.repo.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return supplier, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:             s.ID,
		CompanyID:      s.CompanyID,
		Name:           s.Name,
		Address:        s.Address,
		Country:        s.Country,
		ContactPerson:  s.ContactPerson,
		ContactEmail:   s.ContactEmail,
		ContactPhone:   s.ContactPhone,
		Certifications: s.Certifications,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
