package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora append-only.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

func (r *AuditLogRepo) Create(ctx context.Context, l *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, company_id, action_type, target_resource_id, target_resource_type,
			before_value, after_value, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.UserID, l.CompanyID, l.ActionType, l.TargetResourceID, l.TargetResourceType,
		l.BeforeValue, l.AfterValue, l.IPAddress, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *AuditLogRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, user_id, company_id, action_type, target_resource_id, target_resource_type,
			before_value, after_value, ip_address, created_at
		FROM audit_logs WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.CompanyID, &l.ActionType, &l.TargetResourceID, &l.TargetResourceType,
			&l.BeforeValue, &l.AfterValue, &l.IPAddress, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
