package entity

import "time"

// Tipos de reporte soportados por el servicio de IA.
const (
	ReportTypeGRI   = "GRI"
	ReportTypeCSDDD = "CSDDD"
)

// ComplianceReport reporte ESG generado por el servicio externo y persistido.
type ComplianceReport struct {
	ID            string
	CompanyID     string
	ReportType    string
	StartDate     time.Time
	EndDate       time.Time
	ReportContent string
	Metrics       map[string]any
	FileURL       string
	GeneratedBy   string // user_id
	CreatedAt     time.Time
}
