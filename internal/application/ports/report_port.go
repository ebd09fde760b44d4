package ports

import (
	"context"
	"time"
)

// ReportRequest datos enviados al servicio externo de reportes ESG.
type ReportRequest struct {
	CompanyID  string
	ReportType string
	StartDate  time.Time
	EndDate    time.Time
}

// GeneratedReport respuesta del servicio: narrativa y métricas agregadas.
type GeneratedReport struct {
	ReportContent string
	Metrics       map[string]any
}

// ReportGenerator puerto de salida hacia el servicio de IA que agrega métricas y redacta el reporte.
// Esta aplicación nunca calcula métricas ESG por sí misma.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, req ReportRequest) (*GeneratedReport, error)
}
