package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ingest"
	"github.com/jhoicas/Trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var (
	_ auth.TxRunner         = (*TxRunner)(nil)
	_ traceability.TxRunner = (*TxRunner)(nil)
	_ ingest.TxRunner       = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia la transacción, ejecuta fn con la tx y hace Commit; cualquier error → Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRegistration alta de empresa + administrador.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	companies repository.CompanyRepository,
	users repository.UserRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewCompanyRepository(tx), NewUserRepository(tx))
	})
}

// RunProduction corrida de producción + sus insumos.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(runs repository.ProductionRunRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductionRunRepository(tx))
	})
}

// RunIngest volcado de los tres buffers de métricas y last_ping de los dispositivos.
func (r *TxRunner) RunIngest(ctx context.Context, fn func(
	metrics repository.MetricRepository,
	devices repository.DeviceRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewMetricRepository(tx), NewDeviceRepository(tx))
	})
}
