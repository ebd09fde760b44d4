package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var (
	_ repository.RawMaterialRepository   = (*RawMaterialRepo)(nil)
	_ repository.ProductionRunRepository = (*ProductionRunRepo)(nil)
	_ repository.FinishedGoodRepository  = (*FinishedGoodRepo)(nil)
	_ repository.TraceRepository         = (*TraceRepo)(nil)
)

// ────────────────────────────────────────────────────────────────
// Lotes de materia prima (empresa vía proveedor)
// ────────────────────────────────────────────────────────────────

// RawMaterialRepo lotes de materia prima sobre PostgreSQL.
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador.
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

const rawMaterialSelect = `
	SELECT b.id, b.supplier_id, b.material_name, b.material_type, b.batch_number, b.quantity, b.unit,
		b.received_date, b.certifications, b.notes, b.created_at, b.updated_at
	FROM raw_material_batches b
	JOIN suppliers s ON s.id = b.supplier_id`

func (r *RawMaterialRepo) Create(ctx context.Context, b *entity.RawMaterialBatch) error {
	query := `
		INSERT INTO raw_material_batches (id, supplier_id, material_name, material_type, batch_number,
			quantity, unit, received_date, certifications, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.SupplierID, b.MaterialName, b.MaterialType, b.BatchNumber,
		b.Quantity, b.Unit, b.ReceivedDate, b.Certifications, b.Notes, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert raw material batch: %w", err)
	}
	return nil
}

func (r *RawMaterialRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.RawMaterialBatch, error) {
	row := r.q.QueryRow(ctx, rawMaterialSelect+` WHERE b.id = $1 AND s.company_id = $2`, id, companyID)
	b, err := scanRawMaterial(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material batch: %w", err)
	}
	return b, nil
}

func (r *RawMaterialRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.RawMaterialBatch, error) {
	rows, err := r.q.Query(ctx, rawMaterialSelect+` WHERE s.company_id = $1 ORDER BY b.created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list raw material batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterialBatch
	for rows.Next() {
		b, err := scanRawMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan raw material batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanRawMaterial(row pgxScanner) (*entity.RawMaterialBatch, error) {
	var b entity.RawMaterialBatch
	err := row.Scan(
		&b.ID, &b.SupplierID, &b.MaterialName, &b.MaterialType, &b.BatchNumber, &b.Quantity, &b.Unit,
		&b.ReceivedDate, &b.Certifications, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ────────────────────────────────────────────────────────────────
// Corridas de producción (empresa vía fábrica)
// ────────────────────────────────────────────────────────────────

// ProductionRunRepo corridas e insumos sobre PostgreSQL.
type ProductionRunRepo struct {
	q Querier
}

// NewProductionRunRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRunRepository(q Querier) *ProductionRunRepo {
	return &ProductionRunRepo{q: q}
}

const runSelect = `
	SELECT r.id, r.factory_id, r.run_number, r.product_type, r.start_date, r.end_date,
		r.units_produced, r.notes, r.created_at, r.updated_at
	FROM production_runs r
	JOIN factories f ON f.id = r.factory_id`

func (r *ProductionRunRepo) Create(ctx context.Context, run *entity.ProductionRun) error {
	query := `
		INSERT INTO production_runs (id, factory_id, run_number, product_type, start_date, end_date,
			units_produced, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		run.ID, run.FactoryID, run.RunNumber, run.ProductType, run.StartDate, run.EndDate,
		run.UnitsProduced, run.Notes, run.CreatedAt, run.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production run: %w", err)
	}
	return nil
}

// CreateInputs inserta los vínculos corrida ↔ lote. Un lote inexistente → domain.ErrNotFound.
func (r *ProductionRunRepo) CreateInputs(ctx context.Context, inputs []*entity.ProductionRunInput) error {
	query := `
		INSERT INTO production_run_inputs (id, production_run_id, raw_material_batch_id, quantity_used, unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, in := range inputs {
		_, err := r.q.Exec(ctx, query, in.ID, in.ProductionRunID, in.RawMaterialBatchID, in.QuantityUsed, in.Unit, in.CreatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert production run input: %w", err)
		}
	}
	return nil
}

func (r *ProductionRunRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.ProductionRun, error) {
	row := r.q.QueryRow(ctx, runSelect+` WHERE r.id = $1 AND f.company_id = $2`, id, companyID)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production run: %w", err)
	}
	return run, nil
}

func (r *ProductionRunRepo) ListInputs(ctx context.Context, runID string) ([]*entity.ProductionRunInput, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, production_run_id, raw_material_batch_id, quantity_used, unit, created_at
		FROM production_run_inputs WHERE production_run_id = $1 ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list production run inputs: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.ProductionRunInput, error) {
		var in entity.ProductionRunInput
		err := row.Scan(&in.ID, &in.ProductionRunID, &in.RawMaterialBatchID, &in.QuantityUsed, &in.Unit, &in.CreatedAt)
		return &in, err
	})
}

func (r *ProductionRunRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.ProductionRun, error) {
	rows, err := r.q.Query(ctx, runSelect+` WHERE f.company_id = $1 ORDER BY r.created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list production runs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production run: %w", err)
		}
		list = append(list, run)
	}
	return list, rows.Err()
}

func scanRun(row pgxScanner) (*entity.ProductionRun, error) {
	var run entity.ProductionRun
	err := row.Scan(
		&run.ID, &run.FactoryID, &run.RunNumber, &run.ProductType, &run.StartDate, &run.EndDate,
		&run.UnitsProduced, &run.Notes, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ────────────────────────────────────────────────────────────────
// Producto terminado
// ────────────────────────────────────────────────────────────────

// FinishedGoodRepo lotes de producto terminado sobre PostgreSQL.
type FinishedGoodRepo struct {
	q Querier
}

// NewFinishedGoodRepository construye el adaptador.
func NewFinishedGoodRepository(q Querier) *FinishedGoodRepo {
	return &FinishedGoodRepo{q: q}
}

const finishedGoodColumns = `g.id, g.production_run_id, g.qr_code_id, g.product_name, g.product_sku, g.quantity,
	g.unit, g.production_date, g.notes, g.created_at, g.updated_at`

// Create inserta el lote. Colisión en uq_finished_good_batches_qr → domain.ErrDuplicate.
func (r *FinishedGoodRepo) Create(ctx context.Context, g *entity.FinishedGoodBatch) error {
	query := `
		INSERT INTO finished_good_batches (id, production_run_id, qr_code_id, product_name, product_sku,
			quantity, unit, production_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		g.ID, g.ProductionRunID, g.QRCodeID, g.ProductName, g.ProductSKU,
		g.Quantity, g.Unit, g.ProductionDate, g.Notes, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && violatedConstraint(err) == "uq_finished_good_batches_qr" {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert finished good batch: %w", err)
	}
	return nil
}

func (r *FinishedGoodRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.FinishedGoodBatch, error) {
	query := `
		SELECT ` + finishedGoodColumns + `
		FROM finished_good_batches g
		JOIN production_runs r ON r.id = g.production_run_id
		JOIN factories f ON f.id = r.factory_id
		WHERE f.company_id = $1
		ORDER BY g.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list finished goods: %w", err)
	}
	defer rows.Close()
	var list []*entity.FinishedGoodBatch
	for rows.Next() {
		g, err := scanFinishedGood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan finished good: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

func scanFinishedGood(row pgxScanner) (*entity.FinishedGoodBatch, error) {
	var g entity.FinishedGoodBatch
	err := row.Scan(
		&g.ID, &g.ProductionRunID, &g.QRCodeID, &g.ProductName, &g.ProductSKU, &g.Quantity,
		&g.Unit, &g.ProductionDate, &g.Notes, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ────────────────────────────────────────────────────────────────
// Consulta pública de la cadena
// ────────────────────────────────────────────────────────────────

// TraceRepo arma la cadena producto → corrida → fábrica → insumos → proveedores.
type TraceRepo struct {
	q Querier
}

// NewTraceRepository construye el adaptador.
func NewTraceRepository(q Querier) *TraceRepo {
	return &TraceRepo{q: q}
}

// GetChainByQRCode dos consultas: cabecera (producto + corrida + fábrica) y una fila por insumo.
func (r *TraceRepo) GetChainByQRCode(ctx context.Context, qrCodeID string) (*repository.TraceChain, error) {
	head := `
		SELECT ` + finishedGoodColumns + `,
			r.id, r.factory_id, r.run_number, r.product_type, r.start_date, r.end_date,
			r.units_produced, r.notes, r.created_at, r.updated_at,
			f.name, f.city, f.country
		FROM finished_good_batches g
		JOIN production_runs r ON r.id = g.production_run_id
		JOIN factories f ON f.id = r.factory_id
		WHERE g.qr_code_id = $1`
	var chain repository.TraceChain
	g, run := &chain.FinishedGood, &chain.ProductionRun
	err := r.q.QueryRow(ctx, head, qrCodeID).Scan(
		&g.ID, &g.ProductionRunID, &g.QRCodeID, &g.ProductName, &g.ProductSKU, &g.Quantity,
		&g.Unit, &g.ProductionDate, &g.Notes, &g.CreatedAt, &g.UpdatedAt,
		&run.ID, &run.FactoryID, &run.RunNumber, &run.ProductType, &run.StartDate, &run.EndDate,
		&run.UnitsProduced, &run.Notes, &run.CreatedAt, &run.UpdatedAt,
		&chain.Factory.Name, &chain.Factory.City, &chain.Factory.Country,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trace chain: %w", err)
	}

	inputs := `
		SELECT b.id, b.material_name, b.material_type, b.batch_number, i.quantity_used, i.unit,
			b.received_date, s.id, s.name, s.country, s.certifications
		FROM production_run_inputs i
		JOIN raw_material_batches b ON b.id = i.raw_material_batch_id
		JOIN suppliers s ON s.id = b.supplier_id
		WHERE i.production_run_id = $1
		ORDER BY i.id`
	rows, err := r.q.Query(ctx, inputs, run.ID)
	if err != nil {
		return nil, fmt.Errorf("list trace inputs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rm repository.TraceRawMaterial
		if err := rows.Scan(
			&rm.BatchID, &rm.MaterialName, &rm.MaterialType, &rm.BatchNumber, &rm.QuantityUsed, &rm.Unit,
			&rm.ReceivedDate, &rm.Supplier.ID, &rm.Supplier.Name, &rm.Supplier.Country, &rm.Supplier.Certifications,
		); err != nil {
			return nil, fmt.Errorf("scan trace input: %w", err)
		}
		chain.RawMaterials = append(chain.RawMaterials, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &chain, nil
}
