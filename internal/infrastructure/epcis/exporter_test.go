package epcis_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/epcis"
)

func sampleTrace() *dto.TraceResponse {
	return &dto.TraceResponse{
		FinishedGood: dto.TraceFinishedGood{
			ID: "fg-1", QRCodeID: "CC-AbCdEf123456", ProductionRunID: "run-1",
			ProductName: "Camiseta", ProductSKU: "TS-01", Quantity: 500, Unit: "pieces", ProductionDate: "2024-02-10",
		},
		ProductionRun: dto.TraceProductionRun{
			ID: "run-1", RunNumber: "RUN-7", StartDate: "2024-02-01",
			Factory: dto.TraceFactory{Name: "Planta Norte", City: "Medellín", Country: "CO"},
		},
		RawMaterials: []dto.TraceRawMaterial{
			{ID: "b-1", MaterialName: "Algodón", BatchNumber: "L-1", QuantityUsed: decimal.RequireFromString("120.5"), Unit: "kg",
				ReceivedDate: "2024-01-15", Supplier: dto.TraceSupplier{Name: "Hilos SA", Country: "PE", Certifications: "GOTS"}},
			{ID: "b-2", MaterialName: "Tinte", BatchNumber: "L-2", QuantityUsed: decimal.NewFromInt(3), Unit: "kg",
				ReceivedDate: "2024-01-20", Supplier: dto.TraceSupplier{Name: "Color Ltda", Country: "CO"}},
		},
	}
}

func fixedClock() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

func TestExportEPCIS_EventosPorInsumoYTransformacion(t *testing.T) {
	doc, _, err := epcis.NewExporter("").WithClock(fixedClock).ExportEPCIS(context.Background(), sampleTrace())
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(doc))
	root := parsed.Root()
	require.NotNil(t, root)
	assert.Equal(t, "EPCISDocument", root.Tag)
	assert.Equal(t, "2024-03-01T12:00:00Z", root.SelectAttrValue("creationDate", ""))

	assert.Len(t, parsed.FindElements("//ObjectEvent"), 2)
	tr := parsed.FindElement("//TransformationEvent")
	require.NotNil(t, tr)
	assert.Len(t, tr.FindElements("inputQuantityList/quantityElement"), 2)
	assert.Equal(t, "urn:trazabilidad:qr:CC-AbCdEf123456", tr.FindElement("outputQuantityList/quantityElement/epcClass").Text())
	assert.Equal(t, "2024-02-10T00:00:00Z", tr.FindElement("eventTime").Text())
}

func TestExportEPCIS_DigestSobreFormaCanonica(t *testing.T) {
	exp := epcis.NewExporter("urn:acme").WithClock(fixedClock)
	doc, digest, err := exp.ExportEPCIS(context.Background(), sampleTrace())
	require.NoError(t, err)

	dec := xml.NewDecoder(bytes.NewReader(doc))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	require.NoError(t, err)
	sum := sha256.Sum256(canonical)
	assert.Equal(t, "sha-256="+base64.StdEncoding.EncodeToString(sum[:]), digest)

	_, again, err := exp.ExportEPCIS(context.Background(), sampleTrace())
	require.NoError(t, err)
	assert.Equal(t, digest, again, "mismo contenido y reloj → mismo digest")
}

func TestExportEPCIS_CadenaNil(t *testing.T) {
	_, _, err := epcis.NewExporter("").ExportEPCIS(context.Background(), nil)
	assert.Error(t, err)
}
