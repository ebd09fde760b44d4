package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// DeviceRepository define el puerto de persistencia para dispositivos IoT.
// La pertenencia a la empresa se resuelve siempre a través de la fábrica.
type DeviceRepository interface {
	Create(ctx context.Context, device *entity.IoTDevice) error
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.IoTDevice, error)
	// GetByExternalIDAndCompany busca por el identificador externo (device_id) que envía el sensor.
	GetByExternalIDAndCompany(ctx context.Context, deviceID, companyID string) (*entity.IoTDevice, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.IoTDevice, error)
	Update(ctx context.Context, device *entity.IoTDevice) error
	UpdateLastPing(ctx context.Context, pings map[string]time.Time) error
	Delete(ctx context.Context, id string) error
}
