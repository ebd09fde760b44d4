package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
)

// AuditLogHandler consulta de la bitácora (solo ADMIN, ver router).
type AuditLogHandler struct {
	uc *usecase.AuditLogUseCase
}

// NewAuditLogHandler construye el handler.
func NewAuditLogHandler(uc *usecase.AuditLogUseCase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

// List godoc
// @Summary      Listar bitácora de auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.AuditLogListResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/audit-logs [get]
func (h *AuditLogHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
