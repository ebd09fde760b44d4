package traceability

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// TxRunner ejecuta el alta de una corrida y sus insumos en una sola transacción.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(runs repository.ProductionRunRepository) error) error
}

// QRGenerator genera identificadores públicos para lotes terminados.
type QRGenerator interface {
	Generate() (string, error)
}

// CacheObserver recibe aciertos/fallos de la caché de trazabilidad (métricas).
type CacheObserver interface {
	TraceCacheLookup(hit bool)
}
