// Package ingest recibe lotes de lecturas IoT, resuelve cada dispositivo dentro de la
// empresa autenticada y vuelca las lecturas válidas en las tablas de series de tiempo.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/telemetry"
)

// DefaultMaxBatch tope de lecturas por request cuando no se configura otro.
const DefaultMaxBatch = 5000

var (
	ErrEmptyBatch    = fmt.Errorf("%w: no se recibieron lecturas", domain.ErrInvalidInput)
	ErrBatchTooLarge = fmt.Errorf("%w: demasiadas lecturas en un solo lote", domain.ErrInvalidInput)
)

// IngestUseCase clasifica lecturas por el tipo fijo del dispositivo. Los fallos por
// lectura se acumulan en el resultado y nunca abortan el lote.
type IngestUseCase struct {
	txRunner TxRunner
	devices  repository.DeviceRepository
	maxBatch int
	observer Observer
}

// NewIngestUseCase construye el caso de uso. maxBatch <= 0 usa DefaultMaxBatch; observer puede ser nil.
func NewIngestUseCase(txRunner TxRunner, devices repository.DeviceRepository, maxBatch int, observer Observer) *IngestUseCase {
	if maxBatch <= 0 {
		maxBatch = DefaultMaxBatch
	}
	return &IngestUseCase{txRunner: txRunner, devices: devices, maxBatch: maxBatch, observer: observer}
}

type outcome struct {
	deviceType string
	ok         bool
}

// Ingest procesa las lecturas en orden. success + failed == len(readings).
// Solo un fallo al volcar el lote completo se devuelve como error.
func (uc *IngestUseCase) Ingest(ctx context.Context, companyID string, readings []dto.IoTReadingRequest) (*dto.IngestResult, error) {
	if len(readings) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(readings) > uc.maxBatch {
		return nil, fmt.Errorf("%w (máximo %d)", ErrBatchTooLarge, uc.maxBatch)
	}
	start := time.Now()

	result := &dto.IngestResult{Errors: make([]string, 0)}
	batch := telemetry.NewBatch(func() string { return uuid.New().String() })
	outcomes := make([]outcome, 0, len(readings))

	// Un device_id repetido en el lote se resuelve una sola vez.
	resolved := make(map[string]*entity.IoTDevice)
	fail := func(deviceType, msg string) {
		result.Failed++
		result.Errors = append(result.Errors, msg)
		outcomes = append(outcomes, outcome{deviceType: deviceType})
	}

	for _, r := range readings {
		dev, seen := resolved[r.DeviceID]
		if !seen {
			var err error
			dev, err = uc.devices.GetByExternalIDAndCompany(ctx, r.DeviceID, companyID)
			if err != nil {
				fail("unknown", fmt.Sprintf("Error processing %s: %v", r.DeviceID, err))
				continue
			}
			resolved[r.DeviceID] = dev
		}
		if dev == nil {
			fail("unknown", fmt.Sprintf("Device %s not found", r.DeviceID))
			continue
		}
		reading, err := toReading(r)
		if err != nil {
			fail(dev.DeviceType, fmt.Sprintf("Error processing %s: %v", r.DeviceID, err))
			continue
		}
		if err := batch.Add(dev, reading); err != nil {
			fail(dev.DeviceType, fmt.Sprintf("Error processing %s: %v", r.DeviceID, err))
			continue
		}
		result.Success++
		outcomes = append(outcomes, outcome{deviceType: dev.DeviceType, ok: true})
	}

	if batch.Len() > 0 {
		if err := uc.flush(ctx, batch); err != nil {
			return nil, err
		}
	}

	if uc.observer != nil {
		for _, o := range outcomes {
			res := "failed"
			if o.ok {
				res = "ok"
			}
			uc.observer.IngestReading(o.deviceType, res)
		}
		uc.observer.IngestBatchDone(start)
	}
	return result, nil
}

// flush hasta tres inserciones masivas (una por tabla no vacía) más last_ping, todo en una tx.
func (uc *IngestUseCase) flush(ctx context.Context, batch *telemetry.Batch) error {
	return uc.txRunner.RunIngest(ctx, func(metrics repository.MetricRepository, devices repository.DeviceRepository) error {
		if len(batch.Energy) > 0 {
			if _, err := metrics.InsertEnergy(ctx, batch.Energy); err != nil {
				return fmt.Errorf("guardar métricas de energía: %w", err)
			}
		}
		if len(batch.Water) > 0 {
			if _, err := metrics.InsertWater(ctx, batch.Water); err != nil {
				return fmt.Errorf("guardar métricas de agua: %w", err)
			}
		}
		if len(batch.Waste) > 0 {
			if _, err := metrics.InsertWaste(ctx, batch.Waste); err != nil {
				return fmt.Errorf("guardar métricas de residuos: %w", err)
			}
		}
		return devices.UpdateLastPing(ctx, batch.LastPing)
	})
}

func toReading(r dto.IoTReadingRequest) (telemetry.Reading, error) {
	if r.Timestamp == "" {
		return telemetry.Reading{}, fmt.Errorf("timestamp es requerido")
	}
	ts, err := dto.ParseTimestamp(r.Timestamp)
	if err != nil {
		return telemetry.Reading{}, err
	}
	return telemetry.Reading{
		DeviceID:       r.DeviceID,
		Timestamp:      ts.UTC(),
		Kwh:            r.Kwh,
		Voltage:        r.Voltage,
		Current:        r.Current,
		PowerFactor:    r.PowerFactor,
		FlowRate:       r.FlowRate,
		VolumeLiters:   r.VolumeLiters,
		PH:             r.PH,
		TDS:            r.TDS,
		Temperature:    r.Temperature,
		WasteType:      r.WasteType,
		WeightKg:       r.WeightKg,
		DisposalMethod: r.DisposalMethod,
		Notes:          r.Notes,
	}, nil
}
