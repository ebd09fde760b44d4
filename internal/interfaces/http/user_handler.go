package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
)

// UserHandler gestión de usuarios de la empresa. Crear, modificar y eliminar exigen rol ADMIN
// (lo decide el use case con el rol del token).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create godoc
// @Summary      Crear usuario (solo ADMIN)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario; role por defecto VIEWER"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), GetRole(c), in)
	if err != nil {
		return writeError(c, err, "usuario no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "usuario no encontrado")
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err, "usuario no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return writeError(c, err, "usuario no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario (solo ADMIN)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a modificar; password se vuelve a hashear"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	id, ok, err := idParam(c, "usuario no encontrado")
	if !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), GetRole(c), id, in)
	if err != nil {
		return writeError(c, err, "usuario no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario (solo ADMIN)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "usuario no encontrado")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), GetRole(c), id); err != nil {
		return writeError(c, err, "usuario no encontrado")
	}
	return c.JSON(dto.MessageResponse{Message: "usuario eliminado"})
}
