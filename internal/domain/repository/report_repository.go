package repository

import (
	"context"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// ReportRepository reportes de cumplimiento ESG.
type ReportRepository interface {
	Create(ctx context.Context, report *entity.ComplianceReport) error
	GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.ComplianceReport, error)
	// ListByCompany devuelve los reportes sin report_content ni metrics, más recientes primero.
	ListByCompany(ctx context.Context, companyID string) ([]*entity.ComplianceReport, error)
}
