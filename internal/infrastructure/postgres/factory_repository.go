package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.FactoryRepository = (*FactoryRepo)(nil)

// FactoryRepo implementación del puerto FactoryRepository sobre PostgreSQL.
type FactoryRepo struct {
	q Querier
}

// NewFactoryRepository construye el adaptador.
func NewFactoryRepository(q Querier) *FactoryRepo {
	return &FactoryRepo{q: q}
}

const factoryColumns = `id, company_id, name, address, city, country, latitude, longitude,
	contact_person, contact_email, contact_phone, is_active, created_at, updated_at`

// Create persiste una fábrica.
func (r *FactoryRepo) Create(ctx context.Context, f *entity.Factory) error {
	query := `
		INSERT INTO factories (` + factoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		f.ID, f.CompanyID, f.Name, f.Address, f.City, f.Country, f.Latitude, f.Longitude,
		f.ContactPerson, f.ContactEmail, f.ContactPhone, f.IsActive, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert factory: %w", err)
	}
	return nil
}

// GetByIDAndCompany obtiene una fábrica de la empresa; (nil, nil) si no existe o es de otra.
func (r *FactoryRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.Factory, error) {
	row := r.q.QueryRow(ctx, `SELECT `+factoryColumns+` FROM factories WHERE id = $1 AND company_id = $2`, id, companyID)
	f, err := scanFactory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factory: %w", err)
	}
	return f, nil
}

// ListByCompany lista fábricas de la empresa.
func (r *FactoryRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Factory, error) {
	query := `SELECT ` + factoryColumns + ` FROM factories WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list factories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Factory
	for rows.Next() {
		f, err := scanFactory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan factory: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// Update actualiza una fábrica.
func (r *FactoryRepo) Update(ctx context.Context, f *entity.Factory) error {
	query := `
		UPDATE factories SET name = $3, address = $4, city = $5, country = $6, latitude = $7, longitude = $8,
			contact_person = $9, contact_email = $10, contact_phone = $11, is_active = $12, updated_at = $13
		WHERE id = $1 AND company_id = $2`
	_, err := r.q.Exec(ctx, query,
		f.ID, f.CompanyID, f.Name, f.Address, f.City, f.Country, f.Latitude, f.Longitude,
		f.ContactPerson, f.ContactEmail, f.ContactPhone, f.IsActive, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update factory: %w", err)
	}
	return nil
}

// Delete borra la fábrica; corridas, lotes y dispositivos caen por ON DELETE CASCADE.
func (r *FactoryRepo) Delete(ctx context.Context, id, companyID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM factories WHERE id = $1 AND company_id = $2`, id, companyID); err != nil {
		return fmt.Errorf("delete factory: %w", err)
	}
	return nil
}

func scanFactory(row pgxScanner) (*entity.Factory, error) {
	var f entity.Factory
	err := row.Scan(
		&f.ID, &f.CompanyID, &f.Name, &f.Address, &f.City, &f.Country, &f.Latitude, &f.Longitude,
		&f.ContactPerson, &f.ContactEmail, &f.ContactPhone, &f.IsActive, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
