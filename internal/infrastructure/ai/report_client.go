package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
)

// Verificar en tiempo de compilación que ReportClient implementa ReportGenerator.
var _ ports.ReportGenerator = (*ReportClient)(nil)

const (
	generateReportPath = "/ai/generate-report"
	maxResponseBytes   = 4 << 20
)

// ReportClient adaptador HTTP hacia el servicio externo que agrega métricas y redacta
// el reporte ESG. El transporte va instrumentado con otelhttp.
type ReportClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewReportClient construye el adaptador. timeout es el límite de red; el use case
// impone además su propio context.WithTimeout.
func NewReportClient(baseURL string, timeout time.Duration) *ReportClient {
	return &ReportClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type generateReportRequest struct {
	CompanyID  string `json:"company_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	ReportType string `json:"report_type"`
}

// GenerateReport POST {baseURL}/ai/generate-report y extrae report_content + metrics.
func (c *ReportClient) GenerateReport(ctx context.Context, in ports.ReportRequest) (*ports.GeneratedReport, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("AI: AI_SERVICE_URL no configurado")
	}
	body, err := json.Marshal(generateReportRequest{
		CompanyID:  in.CompanyID,
		StartDate:  in.StartDate.Format(time.DateOnly),
		EndDate:    in.EndDate.Format(time.DateOnly),
		ReportType: in.ReportType,
	})
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generateReportPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if detail := gjson.GetBytes(raw, "detail"); detail.Exists() {
			return nil, fmt.Errorf("AI: HTTP %d: %s", resp.StatusCode, detail.String())
		}
		return nil, fmt.Errorf("AI: HTTP %d: %s", resp.StatusCode, string(raw))
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("AI: respuesta no es JSON válido")
	}

	content := gjson.GetBytes(raw, "report_content")
	if !content.Exists() || content.String() == "" {
		return nil, fmt.Errorf("AI: la respuesta no incluye report_content")
	}
	out := &ports.GeneratedReport{ReportContent: content.String()}
	if m, ok := gjson.GetBytes(raw, "metrics").Value().(map[string]any); ok {
		out.Metrics = m
	}
	return out, nil
}
