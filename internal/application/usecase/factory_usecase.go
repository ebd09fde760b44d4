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

// FactoryUseCase casos de uso CRUD para fábricas.
type FactoryUseCase struct {
	repo  repository.FactoryRepository
	trace ports.TraceInvalidator
}

// NewFactoryUseCase construye el caso de uso.
func NewFactoryUseCase(repo repository.FactoryRepository) *FactoryUseCase {
	return &FactoryUseCase{repo: repo}
}

// WithTraceInvalidator descarta las consultas públicas cacheadas al editar o borrar.
func (uc *FactoryUseCase) WithTraceInvalidator(inv ports.TraceInvalidator) *FactoryUseCase {
	uc.trace = inv
	return uc
}

// Create crea una nueva fábrica para la empresa.
func (uc *FactoryUseCase) Create(ctx context.Context, companyID string, in dto.CreateFactoryRequest) (*dto.FactoryResponse, error) {
	now := time.Now().UTC()
	factory := &entity.Factory{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          in.Name,
		Address:       in.Address,
		City:          in.City,
		Country:       in.Country,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		ContactPerson: in.ContactPerson,
		ContactEmail:  in.ContactEmail,
		ContactPhone:  in.ContactPhone,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, factory); err != nil {
		return nil, err
	}
	return toFactoryResponse(factory), nil
}

// GetByID obtiene una fábrica de la empresa. ErrNotFound si no existe o es de otra empresa.
func (uc *FactoryUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.FactoryResponse, error) {
	factory, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toFactoryResponse(factory), nil
}

// Update actualiza una fábrica (merge parcial).
func (uc *FactoryUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateFactoryRequest) (*dto.FactoryResponse, error) {
	factory, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		factory.Name = *in.Name
	}
	if in.Address != nil {
		factory.Address = *in.Address
	}
	if in.City != nil {
		factory.City = *in.City
	}
	if in.Country != nil {
		factory.Country = *in.Country
	}
	if in.Latitude != nil {
		factory.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		factory.Longitude = in.Longitude
	}
	if in.ContactPerson != nil {
		factory.ContactPerson = *in.ContactPerson
	}
	if in.ContactEmail != nil {
		factory.ContactEmail = *in.ContactEmail
	}
	if in.ContactPhone != nil {
		factory.ContactPhone = *in.ContactPhone
	}
	if in.IsActive != nil {
		factory.IsActive = *in.IsActive
	}
	factory.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, factory); err != nil {
		return nil, err
	}
	uc.invalidateTrace(ctx, factory.ID)
	return toFactoryResponse(factory), nil
}

// List lista fábricas por empresa con paginación.
func (uc *FactoryUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.FactoryListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FactoryResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFactoryResponse(f))
	}
	return &dto.FactoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina la fábrica y, en cascada, sus dispositivos y corridas. Las métricas se conservan.
func (uc *FactoryUseCase) Delete(ctx context.Context, companyID, id string) error {
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
func (uc *FactoryUseCase) invalidateTrace(ctx context.Context, id string) {
	if uc.trace != nil {
		_ = uc.trace.Invalidate(ctx, ports.FactoryTraceTag(id))
	}
}

func (uc *FactoryUseCase) get(ctx context.Context, companyID, id string) (*entity.Factory, error) {
	factory, err := uc.repo.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, domain.ErrNotFound
	}
	return factory, nil
}

func toFactoryResponse(f *entity.Factory) *dto.FactoryResponse {
	if f == nil {
		return nil
	}
	return &dto.FactoryResponse{
		ID:            f.ID,
		CompanyID:     f.CompanyID,
		Name:          f.Name,
		Address:       f.Address,
		City:          f.City,
		Country:       f.Country,
		Latitude:      f.Latitude,
		Longitude:     f.Longitude,
		ContactPerson: f.ContactPerson,
		ContactEmail:  f.ContactEmail,
		ContactPhone:  f.ContactPhone,
		IsActive:      f.IsActive,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}
