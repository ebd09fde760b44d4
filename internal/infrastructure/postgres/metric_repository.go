package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.MetricRepository = (*MetricRepo)(nil)

// MetricRepo inserción masiva (COPY) en las tablas de series de tiempo.
type MetricRepo struct {
	q Querier
}

// NewMetricRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMetricRepository(q Querier) *MetricRepo {
	return &MetricRepo{q: q}
}

func (r *MetricRepo) InsertEnergy(ctx context.Context, rows []*entity.EnergyMetric) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"energy_metrics"},
		[]string{"id", "device_id", "timestamp", "kwh", "voltage", "current", "power_factor"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			m := rows[i]
			return []any{m.ID, m.DeviceID, m.Timestamp, m.Kwh, m.Voltage, m.Current, m.PowerFactor}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy energy_metrics: %w", err)
	}
	return n, nil
}

func (r *MetricRepo) InsertWater(ctx context.Context, rows []*entity.WaterMetric) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"water_metrics"},
		[]string{"id", "device_id", "timestamp", "flow_rate", "volume_liters", "ph", "tds", "temperature"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			m := rows[i]
			return []any{m.ID, m.DeviceID, m.Timestamp, m.FlowRate, m.VolumeLiters, m.PH, m.TDS, m.Temperature}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy water_metrics: %w", err)
	}
	return n, nil
}

func (r *MetricRepo) InsertWaste(ctx context.Context, rows []*entity.WasteMetric) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"waste_metrics"},
		[]string{"id", "factory_id", "device_id", "timestamp", "waste_type", "weight_kg", "disposal_method", "notes"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			m := rows[i]
			return []any{m.ID, m.FactoryID, nullIfEmpty(m.DeviceID), m.Timestamp, m.WasteType, m.WeightKg, m.DisposalMethod, m.Notes}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy waste_metrics: %w", err)
	}
	return n, nil
}

// nullIfEmpty envía NULL para columnas UUID opcionales.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
