package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ingest"
)

// IngestHandler recepción de lecturas de sensores.
type IngestHandler struct {
	uc *ingest.IngestUseCase
}

// NewIngestHandler construye el handler.
func NewIngestHandler(uc *ingest.IngestUseCase) *IngestHandler {
	return &IngestHandler{uc: uc}
}

// IngestIoT godoc
// @Summary      Ingestar lote de lecturas IoT
// @Description  Cada lectura se enruta por el tipo del dispositivo (ENERGY, WATER, WASTE). Los fallos por lectura no abortan el lote.
// @Tags         ingest
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.IoTReadingRequest  true  "Lecturas"
// @Success      200   {object}  dto.IngestResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/ingest/iot [post]
func (h *IngestHandler) IngestIoT(c *fiber.Ctx) error {
	var readings []dto.IoTReadingRequest
	if err := json.Unmarshal(c.Body(), &readings); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "INVALID_BODY", "se espera un arreglo JSON de lecturas")
	}
	out, err := h.uc.Ingest(c.UserContext(), GetCompanyID(c), readings)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
