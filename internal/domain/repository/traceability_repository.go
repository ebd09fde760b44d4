package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// RawMaterialRepository lotes de materia prima (pertenencia vía proveedor).
type RawMaterialRepository interface {
	Create(ctx context.Context, batch *entity.RawMaterialBatch) error
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.RawMaterialBatch, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.RawMaterialBatch, error)
}

// ProductionRunRepository corridas de producción y sus insumos (pertenencia vía fábrica).
type ProductionRunRepository interface {
	Create(ctx context.Context, run *entity.ProductionRun) error
	CreateInputs(ctx context.Context, inputs []*entity.ProductionRunInput) error
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.ProductionRun, error)
	ListInputs(ctx context.Context, runID string) ([]*entity.ProductionRunInput, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.ProductionRun, error)
}

// FinishedGoodRepository lotes de producto terminado.
type FinishedGoodRepository interface {
	// Create devuelve domain.ErrDuplicate si el qr_code_id ya existe.
	Create(ctx context.Context, good *entity.FinishedGoodBatch) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.FinishedGoodBatch, error)
}

// TraceChain cadena completa de un producto terminado, lista para la consulta pública.
type TraceChain struct {
	FinishedGood  entity.FinishedGoodBatch
	ProductionRun entity.ProductionRun
	Factory       TraceFactory
	RawMaterials  []TraceRawMaterial
}

// TraceFactory campos públicos de la fábrica.
type TraceFactory struct {
	Name    string
	City    string
	Country string
}

// TraceRawMaterial un insumo de la corrida con su lote y proveedor.
type TraceRawMaterial struct {
	BatchID      string
	MaterialName string
	MaterialType string
	BatchNumber  string
	QuantityUsed decimal.Decimal
	Unit         string
	ReceivedDate time.Time
	Supplier     TraceSupplier
}

// TraceSupplier campos públicos del proveedor.
type TraceSupplier struct {
	ID             string
	Name           string
	Country        string
	Certifications string
}

// TraceRepository consulta de solo lectura sobre la cadena de trazabilidad.
type TraceRepository interface {
	// GetChainByQRCode devuelve (nil, nil) si no existe un producto con ese código.
	GetChainByQRCode(ctx context.Context, qrCodeID string) (*TraceChain, error)
}
