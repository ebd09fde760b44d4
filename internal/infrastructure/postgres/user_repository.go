package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, company_id, first_name, last_name, email, password_hash, role, is_active, last_login, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.CompanyID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.Role, user.IsActive, user.LastLogin, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail obtiene un usuario por email (cualquier company).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetByIDAndCompany obtiene un usuario por ID dentro de la empresa.
func (r *UserRepo) GetByIDAndCompany(ctx context.Context, id, companyID string) (*entity.User, error) {
	row := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 AND company_id = $2`, id, companyID)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// ListByCompany lista usuarios por company con paginación.
func (r *UserRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update actualiza un usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET first_name = $3, last_name = $4, email = $5, password_hash = $6,
			role = $7, is_active = $8, updated_at = $9
		WHERE id = $1 AND company_id = $2`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.CompanyID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.Role, user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdateLastLogin registra el último acceso.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE users SET last_login = $2 WHERE id = $1`, id, at); err != nil {
		return fmt.Errorf("update last_login: %w", err)
	}
	return nil
}

// Delete elimina un usuario de la empresa.
func (r *UserRepo) Delete(ctx context.Context, id, companyID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func scanUser(row pgxScanner) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.Role, &u.IsActive, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
