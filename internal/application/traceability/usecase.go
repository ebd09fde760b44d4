package traceability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/trace"
)

// qrMaxRetries reintentos ante colisión del índice único de qr_code_id.
const qrMaxRetries = 3

const (
	defaultRawUnit  = "kg"
	defaultGoodUnit = "pieces"
)

// ErrQRExhausted se agotaron los reintentos de generación de QR.
var ErrQRExhausted = errors.New("no se pudo generar un código QR único")

// Repositories puertos de persistencia del libro de trazabilidad.
type Repositories struct {
	Suppliers     repository.SupplierRepository
	Factories     repository.FactoryRepository
	RawMaterials  repository.RawMaterialRepository
	Runs          repository.ProductionRunRepository
	FinishedGoods repository.FinishedGoodRepository
	Trace         repository.TraceRepository
}

// TraceabilityUseCase registra materia prima, corridas y producto terminado, y arma
// la cadena pública consultada por QR.
type TraceabilityUseCase struct {
	txRunner TxRunner
	repos    Repositories
	qr       QRGenerator

	cache    ports.TraceCache
	observer CacheObserver

	exporter  ports.TraceExporter
	labels    ports.LabelRenderer
	publicURL string
}

// NewTraceabilityUseCase construye el caso de uso. qr nil usa el generador crypto/rand por defecto.
func NewTraceabilityUseCase(txRunner TxRunner, repos Repositories, qr QRGenerator) *TraceabilityUseCase {
	if qr == nil {
		qr = trace.NewQRCodeGenerator()
	}
	return &TraceabilityUseCase{txRunner: txRunner, repos: repos, qr: qr}
}

// WithCache activa la caché de lectura de la consulta pública.
func (uc *TraceabilityUseCase) WithCache(cache ports.TraceCache, observer CacheObserver) *TraceabilityUseCase {
	uc.cache = cache
	uc.observer = observer
	return uc
}

// WithPublishing activa la exportación EPCIS y la etiqueta PDF. publicURL es la base
// a la que apunta el QR impreso (se le concatena el qr_code_id).
func (uc *TraceabilityUseCase) WithPublishing(exporter ports.TraceExporter, labels ports.LabelRenderer, publicURL string) *TraceabilityUseCase {
	uc.exporter = exporter
	uc.labels = labels
	uc.publicURL = publicURL
	return uc
}

// CreateRawMaterial registra un lote recibido de un proveedor de la empresa.
func (uc *TraceabilityUseCase) CreateRawMaterial(ctx context.Context, companyID string, in dto.CreateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	supplier, err := uc.repos.Suppliers.GetByIDAndCompany(ctx, in.SupplierID, companyID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	received, err := dto.ParseDate(in.ReceivedDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	unit := in.Unit
	if unit == "" {
		unit = defaultRawUnit
	}
	now := time.Now().UTC()
	batch := &entity.RawMaterialBatch{
		ID:             uuid.New().String(),
		SupplierID:     supplier.ID,
		MaterialName:   in.MaterialName,
		MaterialType:   in.MaterialType,
		BatchNumber:    in.BatchNumber,
		Quantity:       in.Quantity,
		Unit:           unit,
		ReceivedDate:   received,
		Certifications: in.Certifications,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repos.RawMaterials.Create(ctx, batch); err != nil {
		return nil, err
	}
	return toRawMaterialResponse(batch), nil
}

// CreateProductionRun registra la corrida y sus insumos en una transacción. La fábrica y
// cada lote de materia prima deben pertenecer a la empresa.
func (uc *TraceabilityUseCase) CreateProductionRun(ctx context.Context, companyID string, in dto.CreateProductionRunRequest) (*dto.ProductionRunResponse, error) {
	factory, err := uc.repos.Factories.GetByIDAndCompany(ctx, in.FactoryID, companyID)
	if err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, domain.ErrNotFound
	}
	start, err := dto.ParseDate(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	var end *time.Time
	if in.EndDate != "" {
		t, err := dto.ParseDate(in.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		end = &t
	}

	now := time.Now().UTC()
	run := &entity.ProductionRun{
		ID:            uuid.New().String(),
		FactoryID:     factory.ID,
		RunNumber:     in.RunNumber,
		ProductType:   in.ProductType,
		StartDate:     start,
		EndDate:       end,
		UnitsProduced: in.UnitsProduced,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	inputs := make([]*entity.ProductionRunInput, 0, len(in.RawMaterialInputs))
	for _, ri := range in.RawMaterialInputs {
		batch, err := uc.repos.RawMaterials.GetByIDAndCompany(ctx, ri.RawMaterialBatchID, companyID)
		if err != nil {
			return nil, err
		}
		if batch == nil {
			return nil, domain.ErrNotFound
		}
		unit := ri.Unit
		if unit == "" {
			unit = defaultRawUnit
		}
		inputs = append(inputs, &entity.ProductionRunInput{
			ID:                 uuid.New().String(),
			ProductionRunID:    run.ID,
			RawMaterialBatchID: batch.ID,
			QuantityUsed:       ri.QuantityUsed,
			Unit:               unit,
			CreatedAt:          now,
		})
	}

	err = uc.txRunner.RunProduction(ctx, func(runs repository.ProductionRunRepository) error {
		if err := runs.Create(ctx, run); err != nil {
			return err
		}
		if len(inputs) == 0 {
			return nil
		}
		return runs.CreateInputs(ctx, inputs)
	})
	if err != nil {
		return nil, err
	}
	return toProductionRunResponse(run, inputs), nil
}

// CreateFinishedGood registra un lote terminado y le asigna un qr_code_id nuevo.
// Ante colisión del índice único regenera el código hasta qrMaxRetries veces.
func (uc *TraceabilityUseCase) CreateFinishedGood(ctx context.Context, companyID string, in dto.CreateFinishedGoodRequest) (*dto.FinishedGoodResponse, error) {
	run, err := uc.repos.Runs.GetByIDAndCompany(ctx, in.ProductionRunID, companyID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.ErrNotFound
	}
	produced, err := dto.ParseDate(in.ProductionDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	unit := in.Unit
	if unit == "" {
		unit = defaultGoodUnit
	}
	now := time.Now().UTC()
	good := &entity.FinishedGoodBatch{
		ID:              uuid.New().String(),
		ProductionRunID: run.ID,
		ProductName:     in.ProductName,
		ProductSKU:      in.ProductSKU,
		Quantity:        in.Quantity,
		Unit:            unit,
		ProductionDate:  produced,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for attempt := 0; attempt <= qrMaxRetries; attempt++ {
		code, err := uc.qr.Generate()
		if err != nil {
			return nil, fmt.Errorf("generar qr: %w", err)
		}
		good.QRCodeID = code
		err = uc.repos.FinishedGoods.Create(ctx, good)
		if err == nil {
			return toFinishedGoodResponse(good), nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
	}
	return nil, ErrQRExhausted
}

// GetTrace arma la cadena pública del producto. Códigos mal formados o desconocidos → ErrNotFound.
func (uc *TraceabilityUseCase) GetTrace(ctx context.Context, qrCodeID string) (*dto.TraceResponse, error) {
	if !trace.IsWellFormed(qrCodeID) {
		return nil, domain.ErrNotFound
	}
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, qrCodeID)
		if uc.observer != nil {
			uc.observer.TraceCacheLookup(err == nil && cached != nil)
		}
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	chain, err := uc.repos.Trace.GetChainByQRCode(ctx, qrCodeID)
	if err != nil {
		return nil, err
	}
	if chain == nil {
		return nil, domain.ErrNotFound
	}
	resp := toTraceResponse(chain)
	if uc.cache != nil {
		// La caché es best-effort: un fallo de escritura no afecta la consulta.
		_ = uc.cache.Set(ctx, qrCodeID, resp, cacheTags(chain)...)
	}
	return resp, nil
}

// cacheTags registros editables de los que depende la cadena. Editarlos o borrarlos
// invalida la entrada (ver FactoryUseCase y SupplierUseCase).
func cacheTags(chain *repository.TraceChain) []string {
	tags := []string{ports.FactoryTraceTag(chain.ProductionRun.FactoryID)}
	seen := make(map[string]bool, len(chain.RawMaterials))
	for _, rm := range chain.RawMaterials {
		if rm.Supplier.ID == "" || seen[rm.Supplier.ID] {
			continue
		}
		seen[rm.Supplier.ID] = true
		tags = append(tags, ports.SupplierTraceTag(rm.Supplier.ID))
	}
	return tags
}

// ExportEPCIS devuelve el documento EPCIS de la cadena y su digest canónico.
func (uc *TraceabilityUseCase) ExportEPCIS(ctx context.Context, qrCodeID string) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("exportación EPCIS no configurada")
	}
	t, err := uc.GetTrace(ctx, qrCodeID)
	if err != nil {
		return nil, "", err
	}
	return uc.exporter.ExportEPCIS(ctx, t)
}

// RenderLabel genera la etiqueta PDF con el QR que apunta a la consulta pública.
func (uc *TraceabilityUseCase) RenderLabel(ctx context.Context, qrCodeID string) ([]byte, error) {
	if uc.labels == nil {
		return nil, fmt.Errorf("etiquetas no configuradas")
	}
	t, err := uc.GetTrace(ctx, qrCodeID)
	if err != nil {
		return nil, err
	}
	return uc.labels.RenderLabel(ctx, t, uc.publicURL+qrCodeID)
}

// ListRawMaterials lotes de materia prima de la empresa.
func (uc *TraceabilityUseCase) ListRawMaterials(ctx context.Context, companyID string, limit, offset int) (*dto.RawMaterialListResponse, error) {
	list, err := uc.repos.RawMaterials.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RawMaterialResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toRawMaterialResponse(b))
	}
	return &dto.RawMaterialListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ListProductionRuns corridas de la empresa (sin insumos).
func (uc *TraceabilityUseCase) ListProductionRuns(ctx context.Context, companyID string, limit, offset int) (*dto.ProductionRunListResponse, error) {
	list, err := uc.repos.Runs.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductionRunResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toProductionRunResponse(r, nil))
	}
	return &dto.ProductionRunListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ListFinishedGoods lotes terminados de la empresa.
func (uc *TraceabilityUseCase) ListFinishedGoods(ctx context.Context, companyID string, limit, offset int) (*dto.FinishedGoodListResponse, error) {
	list, err := uc.repos.FinishedGoods.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FinishedGoodResponse, 0, len(list))
	for _, g := range list {
		items = append(items, *toFinishedGoodResponse(g))
	}
	return &dto.FinishedGoodListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}
