// Package pdf genera los documentos imprimibles de la API con Maroto v2:
// el reporte de cumplimiento ESG (A4) y la etiqueta QR de un lote terminado (A6).
//
// Layout del reporte:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + email      │  Tipo de reporte + periodo  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MÉTRICAS: Indicador | Valor                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NARRATIVA: un bloque por párrafo                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: ID del reporte + fecha de generación               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

var (
	_ ports.ReportRenderer = (*MarotoPDFGenerator)(nil)
	_ ports.LabelRenderer  = (*MarotoPDFGenerator)(nil)
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 20, Green: 94, Blue: 62}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ReportRenderer y LabelRenderer usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// RenderReport genera el PDF de un reporte de cumplimiento.
func (g *MarotoPDFGenerator) RenderReport(_ context.Context, report *entity.ComplianceReport, company *entity.Company) ([]byte, error) {
	companyName := ""
	if company != nil {
		companyName = company.Name
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte "+report.ReportType, true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(reportHeaderRow(report, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(report.Metrics) > 0 {
		m.AddRows(sectionTitleRow("MÉTRICAS DEL PERIODO"))
		m.AddRows(metricRows(report.Metrics)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(sectionTitleRow("INFORME"))
	m.AddRows(narrativeRows(report.ReportContent)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Reporte %s   |   Generado: %s", report.ID, report.CreatedAt.Format("02/01/2006 15:04")),
			props.Text{Size: 7, Color: colorGray, Top: 1}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderLabel genera la etiqueta A6 de un lote terminado; el QR apunta a publicURL.
func (g *MarotoPDFGenerator) RenderLabel(_ context.Context, trace *dto.TraceResponse, publicURL string) ([]byte, error) {
	fg := trace.FinishedGood
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithLeftMargin(6).WithRightMargin(6).
		WithTopMargin(6).WithBottomMargin(6).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(fg.QRCodeID, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(
		row.New(10).Add(col.New(12).Add(
			text.New(fg.ProductName, props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Align: align.Center}),
		)),
		row.New(60).Add(col.New(12).Add(code.NewQr(publicURL, props.Rect{Percent: 95, Center: true}))),
		row.New(7).Add(col.New(12).Add(
			text.New(fg.QRCodeID, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 1}),
		)),
		labelFieldRow("SKU", nonEmpty(fg.ProductSKU, "—")),
		labelFieldRow("Cantidad", fmt.Sprintf("%d %s", fg.Quantity, fg.Unit)),
		labelFieldRow("Producción", fg.ProductionDate),
		labelFieldRow("Corrida", trace.ProductionRun.RunNumber),
		labelFieldRow("Fábrica", joinNonEmpty(", ", trace.ProductionRun.Factory.Name, trace.ProductionRun.Factory.City, trace.ProductionRun.Factory.Country)),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func reportHeaderRow(report *entity.ComplianceReport, company *entity.Company) core.Row {
	name, email := "—", ""
	if company != nil {
		name, email = company.Name, company.Email
	}
	period := fmt.Sprintf("Periodo: %s a %s", report.StartDate.Format("02/01/2006"), report.EndDate.Format("02/01/2006"))
	return row.New(18).Add(
		col.New(7).Add(
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(email, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("REPORTE DE CUMPLIMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(report.ReportType, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New(period, props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

// metricRows una fila por métrica, ordenadas por nombre para que el PDF sea estable.
func metricRows(metrics map[string]any) []core.Row {
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]core.Row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, row.New(6).Add(
			col.New(7).Add(text.New(k, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(formatMetric(metrics[k]), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// narrativeRows un bloque de altura automática por párrafo.
func narrativeRows(content string) []core.Row {
	var rows []core.Row
	for _, p := range strings.Split(content, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		rows = append(rows, row.New().Add(col.New(12).Add(
			text.New(p, props.Text{Size: 9, Top: 1, Align: align.Left}),
		)))
	}
	return rows
}

func labelFieldRow(label, value string) core.Row {
	return row.New(5).Add(
		col.New(4).Add(text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 7})),
		col.New(8).Add(text.New(value, props.Text{Size: 7})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func formatMetric(v any) string {
	switch x := v.(type) {
	case float64:
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", x), "0"), ".")
	case nil:
		return "—"
	case map[string]any, []any:
		return fmt.Sprintf("%d elementos", lenOf(x))
	default:
		return fmt.Sprint(x)
	}
}

func lenOf(v any) int {
	switch x := v.(type) {
	case map[string]any:
		return len(x)
	case []any:
		return len(x)
	}
	return 0
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
