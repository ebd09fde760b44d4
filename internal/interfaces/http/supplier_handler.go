package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
)

// SupplierHandler CRUD de proveedores de la empresa del token.
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err, "proveedor no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "proveedor no encontrado")
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err, "proveedor no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.SupplierListResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return writeError(c, err, "proveedor no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proveedor (campos parciales)
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.UpdateSupplierRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.SupplierResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSupplierRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	id, ok, err := idParam(c, "proveedor no encontrado")
	if !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), id, in)
	if err != nil {
		return writeError(c, err, "proveedor no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "proveedor no encontrado")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), id); err != nil {
		return writeError(c, err, "proveedor no encontrado")
	}
	return c.JSON(dto.MessageResponse{Message: "proveedor eliminado"})
}
