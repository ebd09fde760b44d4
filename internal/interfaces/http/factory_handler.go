package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
)

// FactoryHandler CRUD de fábricas de la empresa del token.
type FactoryHandler struct {
	uc *usecase.FactoryUseCase
}

// NewFactoryHandler construye el handler.
func NewFactoryHandler(uc *usecase.FactoryUseCase) *FactoryHandler {
	return &FactoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear fábrica
// @Tags         factories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFactoryRequest  true  "Datos de la fábrica"
// @Success      201   {object}  dto.FactoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/factories [post]
func (h *FactoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFactoryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err, "fábrica no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener fábrica por ID
// @Tags         factories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la fábrica"
// @Success      200  {object}  dto.FactoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/factories/{id} [get]
func (h *FactoryHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "fábrica no encontrada")
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err, "fábrica no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar fábricas
// @Tags         factories
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.FactoryListResponse
// @Router       /api/factories [get]
func (h *FactoryHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return writeError(c, err, "fábrica no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar fábrica (campos parciales)
// @Tags         factories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la fábrica"
// @Param        body  body  dto.UpdateFactoryRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.FactoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/factories/{id} [put]
func (h *FactoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFactoryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	id, ok, err := idParam(c, "fábrica no encontrada")
	if !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), id, in)
	if err != nil {
		return writeError(c, err, "fábrica no encontrada")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar fábrica
// @Tags         factories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la fábrica"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/factories/{id} [delete]
func (h *FactoryHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "fábrica no encontrada")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), id); err != nil {
		return writeError(c, err, "fábrica no encontrada")
	}
	return c.JSON(dto.MessageResponse{Message: "fábrica eliminada"})
}
