package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
)

// DeviceHandler CRUD de dispositivos IoT de la empresa del token.
type DeviceHandler struct {
	uc *usecase.DeviceUseCase
}

// NewDeviceHandler construye el handler.
func NewDeviceHandler(uc *usecase.DeviceUseCase) *DeviceHandler {
	return &DeviceHandler{uc: uc}
}

// Create godoc
// @Summary      Crear dispositivo IoT
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeviceRequest  true  "Datos del dispositivo IoT"
// @Success      201   {object}  dto.DeviceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/devices [post]
func (h *DeviceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeviceRequest
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
// @Summary      Obtener dispositivo IoT por ID
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del dispositivo IoT"
// @Success      200  {object}  dto.DeviceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [get]
func (h *DeviceHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "dispositivo no encontrado")
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err, "dispositivo no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar dispositivos IoT
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.DeviceListResponse
// @Router       /api/devices [get]
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return writeError(c, err, "dispositivo no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar dispositivo IoT (campos parciales)
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del dispositivo IoT"
// @Param        body  body  dto.UpdateDeviceRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.DeviceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [put]
func (h *DeviceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDeviceRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	id, ok, err := idParam(c, "dispositivo no encontrado")
	if !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), id, in)
	if err != nil {
		return writeError(c, err, "dispositivo no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar dispositivo IoT
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del dispositivo IoT"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [delete]
func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "dispositivo no encontrado")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), id); err != nil {
		return writeError(c, err, "dispositivo no encontrado")
	}
	return c.JSON(dto.MessageResponse{Message: "dispositivo eliminado"})
}
