package repository

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// MetricRepository inserción masiva en las tablas de series de tiempo. Solo agrega filas.
type MetricRepository interface {
	InsertEnergy(ctx context.Context, rows []*entity.EnergyMetric) (int64, error)
	InsertWater(ctx context.Context, rows []*entity.WaterMetric) (int64, error)
	InsertWaste(ctx context.Context, rows []*entity.WasteMetric) (int64, error)
}
