package traceability_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/trace"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/cache"
	"github.com/jhoicas/Trazabilidad-api/internal/testutil/memstore"
)

const (
	companyA = "00000000-0000-0000-0000-00000000000a"
	companyB = "00000000-0000-0000-0000-00000000000b"
)

func strPtr(s string) *string { return &s }

// fixedQR devuelve los códigos en orden; sirve para forzar colisiones.
type fixedQR struct {
	codes []string
	i     int
}

func (f *fixedQR) Generate() (string, error) {
	c := f.codes[f.i%len(f.codes)]
	f.i++
	return c, nil
}

type fixture struct {
	store     *memstore.Store
	uc        *traceability.TraceabilityUseCase
	factoryID string
	batchIDs  []string
}

func repos(store *memstore.Store) traceability.Repositories {
	return traceability.Repositories{
		Suppliers:     store.Suppliers(),
		Factories:     store.Factories(),
		RawMaterials:  store.RawMaterials(),
		Runs:          store.Runs(),
		FinishedGoods: store.FinishedGoods(),
		Trace:         store.Trace(),
	}
}

// newFixture empresa A con una fábrica, un proveedor y dos lotes de materia prima.
func newFixture(t *testing.T, qr traceability.QRGenerator) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	f, err := usecase.NewFactoryUseCase(store.Factories()).Create(ctx, companyA, dto.CreateFactoryRequest{Name: "Planta Norte", City: "Medellín", Country: "CO"})
	require.NoError(t, err)
	s, err := usecase.NewSupplierUseCase(store.Suppliers()).Create(ctx, companyA, dto.CreateSupplierRequest{Name: "Algodones del Sur", Country: "PE", Certifications: "GOTS"})
	require.NoError(t, err)

	uc := traceability.NewTraceabilityUseCase(store, repos(store), qr)
	fx := &fixture{store: store, uc: uc, factoryID: f.ID}
	for _, n := range []string{"L-001", "L-002"} {
		b, err := uc.CreateRawMaterial(ctx, companyA, dto.CreateRawMaterialRequest{
			SupplierID:   s.ID,
			MaterialName: "Algodón orgánico",
			BatchNumber:  n,
			Quantity:     decimal.NewFromInt(500),
			ReceivedDate: "2024-01-10",
		})
		require.NoError(t, err)
		assert.Equal(t, "kg", b.Unit, "unidad por defecto")
		fx.batchIDs = append(fx.batchIDs, b.ID)
	}
	return fx
}

func (fx *fixture) run(t *testing.T) *dto.ProductionRunResponse {
	t.Helper()
	run, err := fx.uc.CreateProductionRun(context.Background(), companyA, dto.CreateProductionRunRequest{
		FactoryID: fx.factoryID,
		RunNumber: "RUN-1",
		StartDate: "2024-02-01",
		RawMaterialInputs: []dto.ProductionRunInputRequest{
			{RawMaterialBatchID: fx.batchIDs[0], QuantityUsed: decimal.NewFromInt(120)},
			{RawMaterialBatchID: fx.batchIDs[1], QuantityUsed: decimal.RequireFromString("80.5")},
		},
	})
	require.NoError(t, err)
	return run
}

func TestCreateProductionRun_ConInsumos(t *testing.T) {
	fx := newFixture(t, nil)
	run := fx.run(t)
	assert.Len(t, run.Inputs, 2)
	assert.Nil(t, run.EndDate)
	assert.Equal(t, "2024-02-01", run.StartDate)
}

func TestCreateProductionRun_LoteAjenoEsNotFound(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()
	sb, err := usecase.NewSupplierUseCase(fx.store.Suppliers()).Create(ctx, companyB, dto.CreateSupplierRequest{Name: "Ajeno"})
	require.NoError(t, err)
	foreign, err := fx.uc.CreateRawMaterial(ctx, companyB, dto.CreateRawMaterialRequest{SupplierID: sb.ID, MaterialName: "x", BatchNumber: "B-1", ReceivedDate: "2024-01-01"})
	require.NoError(t, err)

	_, err = fx.uc.CreateProductionRun(ctx, companyA, dto.CreateProductionRunRequest{
		FactoryID: fx.factoryID,
		RunNumber: "RUN-X",
		StartDate: "2024-02-01",
		RawMaterialInputs: []dto.ProductionRunInputRequest{
			{RawMaterialBatchID: fx.batchIDs[0], QuantityUsed: decimal.NewFromInt(1)},
			{RawMaterialBatchID: foreign.ID, QuantityUsed: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	runs, err := fx.uc.ListProductionRuns(ctx, companyA, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, runs.Items, "no queda una corrida sin sus insumos")
}

func TestCreateRawMaterial_ProveedorAjeno(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()
	sb, err := usecase.NewSupplierUseCase(fx.store.Suppliers()).Create(ctx, companyB, dto.CreateSupplierRequest{Name: "Ajeno"})
	require.NoError(t, err)

	_, err = fx.uc.CreateRawMaterial(ctx, companyA, dto.CreateRawMaterialRequest{SupplierID: sb.ID, MaterialName: "x", BatchNumber: "B", ReceivedDate: "2024-01-01"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateFinishedGood_QRUnicoYCadena(t *testing.T) {
	fx := newFixture(t, nil)
	ctx := context.Background()
	run := fx.run(t)

	seen := map[string]bool{}
	var last *dto.FinishedGoodResponse
	for i := 0; i < 25; i++ {
		g, err := fx.uc.CreateFinishedGood(ctx, companyA, dto.CreateFinishedGoodRequest{ProductionRunID: run.ID, ProductName: "Camiseta", Quantity: 100, ProductionDate: "2024-02-05"})
		require.NoError(t, err)
		assert.True(t, trace.IsWellFormed(g.QRCodeID), g.QRCodeID)
		assert.False(t, seen[g.QRCodeID], "qr repetido %s", g.QRCodeID)
		seen[g.QRCodeID] = true
		last = g
	}
	assert.Equal(t, "pieces", last.Unit)

	tr, err := fx.uc.GetTrace(ctx, last.QRCodeID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, tr.FinishedGood.ProductionRunID)
	assert.Len(t, tr.RawMaterials, len(run.Inputs))
	assert.Equal(t, "Planta Norte", tr.ProductionRun.Factory.Name)
	assert.Equal(t, "Algodones del Sur", tr.RawMaterials[0].Supplier.Name)
}

func TestCreateFinishedGood_ReintentaAnteColision(t *testing.T) {
	qr := &fixedQR{codes: []string{"CC-AAAAAAAAAAAA", "CC-AAAAAAAAAAAA", "CC-BBBBBBBBBBBB"}}
	fx := newFixture(t, qr)
	ctx := context.Background()
	run := fx.run(t)
	in := dto.CreateFinishedGoodRequest{ProductionRunID: run.ID, ProductName: "Camiseta", ProductionDate: "2024-02-05"}

	first, err := fx.uc.CreateFinishedGood(ctx, companyA, in)
	require.NoError(t, err)
	assert.Equal(t, "CC-AAAAAAAAAAAA", first.QRCodeID)

	second, err := fx.uc.CreateFinishedGood(ctx, companyA, in)
	require.NoError(t, err)
	assert.Equal(t, "CC-BBBBBBBBBBBB", second.QRCodeID, "la colisión se resuelve regenerando")
}

func TestCreateFinishedGood_AgotaReintentos(t *testing.T) {
	qr := &fixedQR{codes: []string{"CC-AAAAAAAAAAAA"}}
	fx := newFixture(t, qr)
	ctx := context.Background()
	run := fx.run(t)
	in := dto.CreateFinishedGoodRequest{ProductionRunID: run.ID, ProductName: "Camiseta", ProductionDate: "2024-02-05"}

	_, err := fx.uc.CreateFinishedGood(ctx, companyA, in)
	require.NoError(t, err)
	_, err = fx.uc.CreateFinishedGood(ctx, companyA, in)
	assert.ErrorIs(t, err, traceability.ErrQRExhausted)
	assert.NotErrorIs(t, err, domain.ErrDuplicate, "se reporta como error interno, no como conflicto")
}

func TestCreateFinishedGood_CorridaAjena(t *testing.T) {
	fx := newFixture(t, nil)
	run := fx.run(t)
	_, err := fx.uc.CreateFinishedGood(context.Background(), companyB, dto.CreateFinishedGoodRequest{ProductionRunID: run.ID, ProductName: "x", ProductionDate: "2024-02-05"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetTrace_Desconocido(t *testing.T) {
	fx := newFixture(t, nil)
	for _, code := range []string{"CC-000000000000", "no-es-un-qr", ""} {
		_, err := fx.uc.GetTrace(context.Background(), code)
		assert.ErrorIs(t, err, domain.ErrNotFound, code)
	}
}

// memCache caché en memoria para verificar el uso de la caché.
type memCache struct {
	data map[string]*dto.TraceResponse
	tags map[string][]string
	sets int
}

func (m *memCache) Get(_ context.Context, qr string) (*dto.TraceResponse, error) {
	return m.data[qr], nil
}

func (m *memCache) Set(_ context.Context, qr string, t *dto.TraceResponse, tags ...string) error {
	m.sets++
	m.data[qr] = t
	m.tags[qr] = tags
	return nil
}

func (m *memCache) Invalidate(_ context.Context, tags ...string) error {
	for qr, own := range m.tags {
		for _, tag := range tags {
			if slices.Contains(own, tag) {
				delete(m.data, qr)
			}
		}
	}
	return nil
}

type hits struct{ hit, miss int }

func (h *hits) TraceCacheLookup(hit bool) {
	if hit {
		h.hit++
		return
	}
	h.miss++
}

func TestGetTrace_UsaCache(t *testing.T) {
	fx := newFixture(t, nil)
	mc := &memCache{data: map[string]*dto.TraceResponse{}, tags: map[string][]string{}}
	obs := &hits{}
	fx.uc.WithCache(mc, obs)
	ctx := context.Background()
	run := fx.run(t)
	g, err := fx.uc.CreateFinishedGood(ctx, companyA, dto.CreateFinishedGoodRequest{ProductionRunID: run.ID, ProductName: "Camiseta", ProductionDate: "2024-02-05"})
	require.NoError(t, err)

	first, err := fx.uc.GetTrace(ctx, g.QRCodeID)
	require.NoError(t, err)
	second, err := fx.uc.GetTrace(ctx, g.QRCodeID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, mc.sets)
	assert.Equal(t, 1, obs.hit)
	assert.Equal(t, 1, obs.miss)
	assert.Contains(t, mc.tags[g.QRCodeID], ports.FactoryTraceTag(fx.factoryID))
	assert.Len(t, mc.tags[g.QRCodeID], 2, "fábrica y un único proveedor")
}

// cachedFixture fixture con la caché Redis (miniredis) y los casos de uso de fábrica y
// proveedor conectados a la invalidación.
func cachedFixture(t *testing.T) (*fixture, *usecase.FactoryUseCase, *usecase.SupplierUseCase, string) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	rc := cache.NewRedisTraceCacheFromClient(client, 5*time.Minute)

	fx := newFixture(t, nil)
	fx.uc.WithCache(rc, nil)
	run := fx.run(t)
	g, err := fx.uc.CreateFinishedGood(context.Background(), companyA, dto.CreateFinishedGoodRequest{ProductionRunID: run.ID, ProductName: "Camiseta", ProductionDate: "2024-02-05"})
	require.NoError(t, err)

	factories := usecase.NewFactoryUseCase(fx.store.Factories()).WithTraceInvalidator(rc)
	suppliers := usecase.NewSupplierUseCase(fx.store.Suppliers()).WithTraceInvalidator(rc)
	return fx, factories, suppliers, g.QRCodeID
}

func TestGetTrace_FabricaBorradaInvalidaCache(t *testing.T) {
	fx, factories, _, qr := cachedFixture(t)
	ctx := context.Background()

	_, err := fx.uc.GetTrace(ctx, qr)
	require.NoError(t, err)

	require.NoError(t, factories.Delete(ctx, companyA, fx.factoryID))

	got, err := fx.uc.GetTrace(ctx, qr)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, got)
}

func TestGetTrace_ProveedorEditadoSeVeEnLaConsulta(t *testing.T) {
	fx, factories, suppliers, qr := cachedFixture(t)
	ctx := context.Background()

	first, err := fx.uc.GetTrace(ctx, qr)
	require.NoError(t, err)
	require.NotEmpty(t, first.RawMaterials)
	assert.Equal(t, "Algodones del Sur", first.RawMaterials[0].Supplier.Name)

	list, err := suppliers.List(ctx, companyA, 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	_, err = suppliers.Update(ctx, companyA, list.Items[0].ID, dto.UpdateSupplierRequest{Name: strPtr("Algodones Andinos")})
	require.NoError(t, err)
	_, err = factories.Update(ctx, companyA, fx.factoryID, dto.UpdateFactoryRequest{City: strPtr("Bogotá")})
	require.NoError(t, err)

	second, err := fx.uc.GetTrace(ctx, qr)
	require.NoError(t, err)
	assert.Equal(t, "Algodones Andinos", second.RawMaterials[0].Supplier.Name)
	assert.Equal(t, "Bogotá", second.ProductionRun.Factory.City)
}
