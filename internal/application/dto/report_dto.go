package dto

import "time"

// GenerateReportRequest solicitud de reporte ESG para un periodo.
type GenerateReportRequest struct {
	ReportType string `json:"report_type" validate:"required,oneof=GRI CSDDD"`
	StartDate  string `json:"start_date" validate:"required,isodate"`
	EndDate    string `json:"end_date" validate:"required,isodate"`
}

// ReportResponse reporte completo.
type ReportResponse struct {
	ID            string         `json:"id"`
	ReportType    string         `json:"report_type"`
	StartDate     string         `json:"start_date"`
	EndDate       string         `json:"end_date"`
	ReportContent string         `json:"report_content"`
	Metrics       map[string]any `json:"metrics,omitempty"`
	GeneratedBy   string         `json:"generated_by,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ReportSummary elemento del listado (sin contenido).
type ReportSummary struct {
	ID         string    `json:"id"`
	ReportType string    `json:"report_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReportListResponse listado de reportes, más recientes primero.
type ReportListResponse struct {
	Items []ReportSummary `json:"items"`
}
