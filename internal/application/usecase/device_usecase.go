package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// DeviceUseCase casos de uso CRUD para dispositivos IoT. La empresa dueña se resuelve por la fábrica.
type DeviceUseCase struct {
	repo        repository.DeviceRepository
	factoryRepo repository.FactoryRepository
}

// NewDeviceUseCase construye el caso de uso.
func NewDeviceUseCase(repo repository.DeviceRepository, factoryRepo repository.FactoryRepository) *DeviceUseCase {
	return &DeviceUseCase{repo: repo, factoryRepo: factoryRepo}
}

// Create registra un dispositivo en una fábrica de la empresa.
// ErrNotFound si la fábrica no es de la empresa; ErrDuplicate si device_id ya existe.
func (uc *DeviceUseCase) Create(ctx context.Context, companyID string, in dto.CreateDeviceRequest) (*dto.DeviceResponse, error) {
	if !entity.IsValidDeviceType(in.DeviceType) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkFactory(ctx, companyID, in.FactoryID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	device := &entity.IoTDevice{
		ID:         uuid.New().String(),
		FactoryID:  in.FactoryID,
		DeviceName: in.DeviceName,
		DeviceID:   in.DeviceID,
		DeviceType: in.DeviceType,
		Location:   in.Location,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, device); err != nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// GetByID obtiene un dispositivo de la empresa.
func (uc *DeviceUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.DeviceResponse, error) {
	device, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// Update actualiza un dispositivo. El tipo no se puede cambiar; un cambio de fábrica
// vuelve a verificar que la nueva fábrica sea de la empresa.
func (uc *DeviceUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateDeviceRequest) (*dto.DeviceResponse, error) {
	device, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.FactoryID != nil && *in.FactoryID != device.FactoryID {
		if err := uc.checkFactory(ctx, companyID, *in.FactoryID); err != nil {
			return nil, err
		}
		device.FactoryID = *in.FactoryID
	}
	if in.DeviceName != nil {
		device.DeviceName = *in.DeviceName
	}
	if in.DeviceID != nil {
		device.DeviceID = *in.DeviceID
	}
	if in.Location != nil {
		device.Location = *in.Location
	}
	if in.IsActive != nil {
		device.IsActive = *in.IsActive
	}
	device.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, device); err != nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// List lista los dispositivos de todas las fábricas de la empresa.
func (uc *DeviceUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.DeviceListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeviceResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDeviceResponse(d))
	}
	return &dto.DeviceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un dispositivo de la empresa. Sus lecturas históricas se conservan.
func (uc *DeviceUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *DeviceUseCase) get(ctx context.Context, companyID, id string) (*entity.IoTDevice, error) {
	device, err := uc.repo.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, domain.ErrNotFound
	}
	return device, nil
}

func (uc *DeviceUseCase) checkFactory(ctx context.Context, companyID, factoryID string) error {
	factory, err := uc.factoryRepo.GetByIDAndCompany(ctx, factoryID, companyID)
	if err != nil {
		return err
	}
	if factory == nil {
		return domain.ErrNotFound
	}
	return nil
}

func toDeviceResponse(d *entity.IoTDevice) *dto.DeviceResponse {
	if d == nil {
		return nil
	}
	return &dto.DeviceResponse{
		ID:         d.ID,
		FactoryID:  d.FactoryID,
		DeviceName: d.DeviceName,
		DeviceID:   d.DeviceID,
		DeviceType: d.DeviceType,
		Location:   d.Location,
		IsActive:   d.IsActive,
		LastPing:   d.LastPing,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
