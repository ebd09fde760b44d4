package auth

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
	"github.com/jhoicas/Trazabilidad-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta el alta de empresa + administrador en una sola transacción.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(companies repository.CompanyRepository, users repository.UserRepository) error) error
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	tx          TxRunner
	jwtCfg      JWTConfig
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, tx TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, tx: tx, jwtCfg: jwtCfg, now: time.Now}
}

// Register crea la empresa y su usuario ADMIN. Devuelve ErrConflict si el email de la
// empresa ya existe y ErrEmailAlreadyExists si el del usuario ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	companyEmail := normalizeEmail(in.CompanyEmail)
	email := normalizeEmail(in.Email)

	existingCompany, err := uc.companyRepo.GetByEmail(ctx, companyEmail)
	if err != nil {
		return nil, err
	}
	if existingCompany != nil {
		return nil, domain.ErrConflict
	}
	existingUser, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := uc.now().UTC()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.CompanyName),
		Email:     companyEmail,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.RunRegistration(ctx, func(companies repository.CompanyRepository, users repository.UserRepository) error {
		if err := companies.Create(ctx, company); err != nil {
			return err
		}
		return users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return uc.issue(user, company)
}

// Login verifica email/password, actualiza last_login y retorna token + usuario + empresa.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	now := uc.now().UTC()
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	company, err := uc.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	return uc.issue(user, company)
}

func (uc *AuthUseCase) issue(user *entity.User, company *entity.Company) (*dto.AuthResponse, error) {
	token, err := jwt.Sign(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, time.Duration(uc.jwtCfg.ExpMinutes)*time.Minute, jwt.Principal{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Email:     user.Email,
		Role:      user.Role,
	})
	if err != nil {
		return nil, err
	}
	resp := &dto.AuthResponse{
		AccessToken: token,
		User: dto.AuthUser{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      user.Role,
			CompanyID: user.CompanyID,
		},
	}
	if company != nil {
		resp.Company = &dto.AuthCompany{ID: company.ID, Name: company.Name, Email: company.Email}
	}
	return resp, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
