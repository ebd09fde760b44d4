package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios. Solo ADMIN puede crear,
// modificar o eliminar; cualquier rol autenticado puede leer los de su empresa.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea un usuario en la empresa del actor. Rol por defecto VIEWER.
func (uc *UserUseCase) Create(ctx context.Context, companyID, actorRole string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if actorRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	role := in.Role
	if role == "" {
		role = entity.RoleViewer
	}
	if !entity.IsValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario de la empresa.
func (uc *UserUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// Update modifica un usuario; si viene password se vuelve a hashear.
func (uc *UserUseCase) Update(ctx context.Context, companyID, actorRole, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if actorRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	user, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if in.Role != nil {
		if !entity.IsValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// List lista usuarios de la empresa con paginación.
func (uc *UserUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un usuario de la empresa.
func (uc *UserUseCase) Delete(ctx context.Context, companyID, actorRole, id string) error {
	if actorRole != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id, companyID)
}

func (uc *UserUseCase) get(ctx context.Context, companyID, id string) (*entity.User, error) {
	user, err := uc.repo.GetByIDAndCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
