package ingest

import (
	"context"
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// TxRunner ejecuta el volcado de un lote (inserciones masivas + last_ping) en una transacción.
type TxRunner interface {
	RunIngest(ctx context.Context, fn func(metrics repository.MetricRepository, devices repository.DeviceRepository) error) error
}

// Observer recibe el resultado de cada lectura y la duración del lote (métricas).
type Observer interface {
	IngestReading(deviceType, result string)
	IngestBatchDone(since time.Time)
}
