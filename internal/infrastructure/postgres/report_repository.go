package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo reportes de cumplimiento ESG sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func (r *ReportRepo) Create(ctx context.Context, rep *entity.ComplianceReport) error {
	query := `
		INSERT INTO compliance_reports (id, company_id, report_type, start_date, end_date, report_content,
			metrics, file_url, generated_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		rep.ID, rep.CompanyID, rep.ReportType, rep.StartDate, rep.EndDate, rep.ReportContent,
		rep.Metrics, rep.FileURL, nullIfEmpty(rep.GeneratedBy), rep.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert compliance report: %w", err)
	}
	return nil
}

func (r *ReportRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.ComplianceReport, error) {
	query := `
		SELECT id, company_id, report_type, start_date, end_date, report_content, metrics, file_url,
			COALESCE(generated_by::text, ''), created_at
		FROM compliance_reports WHERE id = $1 AND company_id = $2`
	var rep entity.ComplianceReport
	err := r.q.QueryRow(ctx, query, id, companyID).Scan(
		&rep.ID, &rep.CompanyID, &rep.ReportType, &rep.StartDate, &rep.EndDate, &rep.ReportContent,
		&rep.Metrics, &rep.FileURL, &rep.GeneratedBy, &rep.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compliance report: %w", err)
	}
	return &rep, nil
}

// ListByCompany no trae report_content ni metrics.
func (r *ReportRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.ComplianceReport, error) {
	query := `
		SELECT id, company_id, report_type, start_date, end_date, file_url,
			COALESCE(generated_by::text, ''), created_at
		FROM compliance_reports WHERE company_id = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list compliance reports: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComplianceReport
	for rows.Next() {
		var rep entity.ComplianceReport
		if err := rows.Scan(
			&rep.ID, &rep.CompanyID, &rep.ReportType, &rep.StartDate, &rep.EndDate, &rep.FileURL,
			&rep.GeneratedBy, &rep.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan compliance report: %w", err)
		}
		list = append(list, &rep)
	}
	return list, rows.Err()
}
