package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, company_id, name, address, country, contact_person, contact_email,
	contact_phone, certifications, is_active, created_at, updated_at`

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.Name, s.Address, s.Country, s.ContactPerson, s.ContactEmail,
		s.ContactPhone, s.Certifications, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Supplier, error) {
	row := r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1 AND company_id = $2`, id, companyID)
	s, err := scanSupplier(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

func (r *SupplierRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $3, address = $4, country = $5, contact_person = $6, contact_email = $7,
			contact_phone = $8, certifications = $9, is_active = $10, updated_at = $11
		WHERE id = $1 AND company_id = $2`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.Name, s.Address, s.Country, s.ContactPerson, s.ContactEmail,
		s.ContactPhone, s.Certifications, s.IsActive, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) Delete(ctx context.Context, id, companyID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1 AND company_id = $2`, id, companyID); err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

func scanSupplier(row pgxScanner) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Address, &s.Country, &s.ContactPerson, &s.ContactEmail,
		&s.ContactPhone, &s.Certifications, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
