package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

// DeviceRepo dispositivos IoT. La empresa se resuelve siempre con JOIN a factories.
type DeviceRepo struct {
	q Querier
}

// NewDeviceRepository construye el adaptador.
func NewDeviceRepository(q Querier) *DeviceRepo {
	return &DeviceRepo{q: q}
}

const deviceSelect = `
	SELECT d.id, d.factory_id, d.device_name, d.device_id, d.device_type, d.location,
		d.is_active, d.last_ping, d.created_at, d.updated_at
	FROM iot_devices d
	JOIN factories f ON f.id = d.factory_id`

// Create persiste el dispositivo. device_id duplicado → domain.ErrDuplicate.
func (r *DeviceRepo) Create(ctx context.Context, d *entity.IoTDevice) error {
	query := `
		INSERT INTO iot_devices (id, factory_id, device_name, device_id, device_type, location,
			is_active, last_ping, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.FactoryID, d.DeviceName, d.DeviceID, d.DeviceType, d.Location,
		d.IsActive, d.LastPing, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert device: %w", err)
	}
	return nil
}

func (r *DeviceRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.IoTDevice, error) {
	row := r.q.QueryRow(ctx, deviceSelect+` WHERE d.id = $1 AND f.company_id = $2`, id, companyID)
	d, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return d, nil
}

// GetByExternalIDAndCompany lookup de ingesta: device.device_id = ? AND factory.company_id = ?.
func (r *DeviceRepo) GetByExternalIDAndCompany(ctx context.Context, deviceID, companyID string) (*entity.IoTDevice, error) {
	row := r.q.QueryRow(ctx, deviceSelect+` WHERE d.device_id = $1 AND f.company_id = $2`, deviceID, companyID)
	d, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device by device_id: %w", err)
	}
	return d, nil
}

func (r *DeviceRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.IoTDevice, error) {
	query := deviceSelect + ` WHERE f.company_id = $1 ORDER BY d.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()
	var list []*entity.IoTDevice
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Update no toca device_type: es inmutable.
func (r *DeviceRepo) Update(ctx context.Context, d *entity.IoTDevice) error {
	query := `
		UPDATE iot_devices SET factory_id = $2, device_name = $3, device_id = $4, location = $5,
			is_active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, d.ID, d.FactoryID, d.DeviceName, d.DeviceID, d.Location, d.IsActive, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update device: %w", err)
	}
	return nil
}

// UpdateLastPing avanza last_ping de cada dispositivo sin retrocederlo. Las filas se
// actualizan en orden de id para que dos ingestas concurrentes tomen los locks en el
// mismo orden y no se bloqueen mutuamente.
func (r *DeviceRepo) UpdateLastPing(ctx context.Context, pings map[string]time.Time) error {
	if len(pings) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, id := range lockOrder(pings) {
		batch.Queue(`UPDATE iot_devices SET last_ping = GREATEST(COALESCE(last_ping, $2), $2) WHERE id = $1`, id, pings[id])
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range pings {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("update last_ping: %w", err)
		}
	}
	return nil
}

// lockOrder ids de dispositivo ordenados.
func lockOrder(pings map[string]time.Time) []string {
	ids := make([]string, 0, len(pings))
	for id := range pings {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (r *DeviceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM iot_devices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	return nil
}

func scanDevice(row pgxScanner) (*entity.IoTDevice, error) {
	var d entity.IoTDevice
	err := row.Scan(
		&d.ID, &d.FactoryID, &d.DeviceName, &d.DeviceID, &d.DeviceType, &d.Location,
		&d.IsActive, &d.LastPing, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
