package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, email, phone, address, country, is_active, created_at, updated_at`

// Create persiste una nueva empresa. Email duplicado → domain.ErrConflict.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.Country, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	row := r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetByEmail obtiene una empresa por email.
func (r *CompanyRepo) GetByEmail(ctx context.Context, email string) (*entity.Company, error) {
	row := r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE email = $1`, email)
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by email: %w", err)
	}
	return c, nil
}

func scanCompany(row pgxScanner) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Country, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
