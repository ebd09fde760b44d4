package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/testutil/memstore"
)

const (
	companyA = "00000000-0000-0000-0000-00000000000a"
	companyB = "00000000-0000-0000-0000-00000000000b"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// ──────────────────────────────────────────────────────────────────────────────
// Fábricas
// ──────────────────────────────────────────────────────────────────────────────

func TestFactory_CRUDDentroDeLaEmpresa(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewFactoryUseCase(memstore.New().Factories())

	created, err := uc.Create(ctx, companyA, dto.CreateFactoryRequest{Name: "Planta Norte", City: "Medellín", Country: "CO"})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	updated, err := uc.Update(ctx, companyA, created.ID, dto.UpdateFactoryRequest{City: strPtr("Bogotá"), IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Planta Norte", updated.Name, "el merge parcial conserva lo no enviado")
	assert.Equal(t, "Bogotá", updated.City)
	assert.False(t, updated.IsActive)

	list, err := uc.List(ctx, companyA, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, uc.Delete(ctx, companyA, created.ID))
	_, err = uc.GetByID(ctx, companyA, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFactory_OtraEmpresaRecibeNotFound(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewFactoryUseCase(memstore.New().Factories())
	created, err := uc.Create(ctx, companyA, dto.CreateFactoryRequest{Name: "Planta Norte"})
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, companyB, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, companyB, created.ID, dto.UpdateFactoryRequest{Name: strPtr("robada")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, companyB, created.ID), domain.ErrNotFound)

	still, err := uc.GetByID(ctx, companyA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Planta Norte", still.Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dispositivos
// ──────────────────────────────────────────────────────────────────────────────

func TestDevice_ValidaFabricaDeLaEmpresa(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	factories := usecase.NewFactoryUseCase(store.Factories())
	devices := usecase.NewDeviceUseCase(store.Devices(), store.Factories())

	fa, err := factories.Create(ctx, companyA, dto.CreateFactoryRequest{Name: "A"})
	require.NoError(t, err)
	fb, err := factories.Create(ctx, companyB, dto.CreateFactoryRequest{Name: "B"})
	require.NoError(t, err)

	_, err = devices.Create(ctx, companyA, dto.CreateDeviceRequest{FactoryID: fb.ID, DeviceName: "m1", DeviceID: "D1", DeviceType: entity.DeviceTypeEnergy})
	assert.ErrorIs(t, err, domain.ErrNotFound, "fábrica de otra empresa")

	dev, err := devices.Create(ctx, companyA, dto.CreateDeviceRequest{FactoryID: fa.ID, DeviceName: "m1", DeviceID: "D1", DeviceType: entity.DeviceTypeEnergy})
	require.NoError(t, err)

	_, err = devices.Create(ctx, companyA, dto.CreateDeviceRequest{FactoryID: fa.ID, DeviceName: "m2", DeviceID: "D1", DeviceType: entity.DeviceTypeWater})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "device_id es único")

	_, err = devices.Update(ctx, companyA, dev.ID, dto.UpdateDeviceRequest{FactoryID: strPtr(fb.ID)})
	assert.ErrorIs(t, err, domain.ErrNotFound, "mover a una fábrica ajena se rechaza")

	_, err = devices.GetByID(ctx, companyB, dev.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	updated, err := devices.Update(ctx, companyA, dev.ID, dto.UpdateDeviceRequest{Location: strPtr("Caldera 2")})
	require.NoError(t, err)
	assert.Equal(t, entity.DeviceTypeEnergy, updated.DeviceType, "el tipo no cambia")
	assert.Equal(t, "Caldera 2", updated.Location)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUser_SoloAdminModifica(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := usecase.NewUserUseCase(store.Users())
	in := dto.CreateUserRequest{FirstName: "Luis", LastName: "Pérez", Email: "luis@andinos.co", Password: "12345678"}

	for _, role := range []string{entity.RoleFactoryManager, entity.RoleViewer} {
		_, err := uc.Create(ctx, companyA, role, in)
		assert.ErrorIs(t, err, domain.ErrForbidden, role)
	}
	assert.Equal(t, 0, store.CountUsers())

	created, err := uc.Create(ctx, companyA, entity.RoleAdmin, in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, created.Role, "rol por defecto")

	_, err = uc.Update(ctx, companyA, entity.RoleViewer, created.ID, dto.UpdateUserRequest{Role: strPtr(entity.RoleAdmin)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, companyA, entity.RoleFactoryManager, created.ID), domain.ErrForbidden)

	got, err := uc.GetByID(ctx, companyA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, got.Role, "sin cambios tras los intentos rechazados")
}

func TestUser_EmailDuplicadoYRehash(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := usecase.NewUserUseCase(store.Users())

	a, err := uc.Create(ctx, companyA, entity.RoleAdmin, dto.CreateUserRequest{FirstName: "A", LastName: "A", Email: "a@x.co", Password: "12345678"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, companyB, entity.RoleAdmin, dto.CreateUserRequest{FirstName: "B", LastName: "B", Email: "A@x.co", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists, "el email es único entre empresas")

	before, err := store.Users().GetByIDAndCompany(ctx, a.ID, companyA)
	require.NoError(t, err)
	_, err = uc.Update(ctx, companyA, entity.RoleAdmin, a.ID, dto.UpdateUserRequest{Password: strPtr("nueva-clave-1")})
	require.NoError(t, err)
	after, err := store.Users().GetByIDAndCompany(ctx, a.ID, companyA)
	require.NoError(t, err)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)
	assert.NotEqual(t, "nueva-clave-1", after.PasswordHash)
}
