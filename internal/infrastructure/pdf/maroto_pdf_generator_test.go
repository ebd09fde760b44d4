package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/pdf"
)

func TestRenderReport_GeneraPDF(t *testing.T) {
	report := &entity.ComplianceReport{
		ID:            "r-1",
		ReportType:    entity.ReportTypeGRI,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		ReportContent: "Resumen ejecutivo.\n\nConsumo energético estable.",
		Metrics:       map[string]any{"energy_kwh": 1250.5, "water_liters": 300.0, "sites": []any{"a", "b"}},
		CreatedAt:     time.Now(),
	}
	company := &entity.Company{Name: "Textiles Andinos", Email: "esg@andinos.co"}

	out, err := pdf.NewMarotoPDFGenerator().RenderReport(context.Background(), report, company)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderReport_SinMetricasNiEmpresa(t *testing.T) {
	report := &entity.ComplianceReport{ID: "r-2", ReportType: entity.ReportTypeCSDDD, ReportContent: "Texto"}
	out, err := pdf.NewMarotoPDFGenerator().RenderReport(context.Background(), report, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderLabel_GeneraPDF(t *testing.T) {
	trace := &dto.TraceResponse{
		FinishedGood: dto.TraceFinishedGood{
			QRCodeID: "CC-abcDEF123_-x", ProductName: "Camiseta orgánica", ProductSKU: "TS-01",
			Quantity: 500, Unit: "pieces", ProductionDate: "2024-02-10",
		},
		ProductionRun: dto.TraceProductionRun{
			RunNumber: "RUN-7",
			Factory:   dto.TraceFactory{Name: "Planta Norte", City: "Medellín", Country: "CO"},
		},
	}
	out, err := pdf.NewMarotoPDFGenerator().RenderLabel(context.Background(), trace, "https://trace.example.com/api/trace/CC-abcDEF123_-x")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
