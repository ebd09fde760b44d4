package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
)

// ReportHandler reportes de cumplimiento ESG.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar reporte GRI o CSDDD para un periodo
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateReportRequest  true  "Tipo y periodo"
// @Success      201   {object}  dto.ReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/reports/generate [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateReportRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Generate(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err, "empresa no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar reportes (más recientes primero)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReportListResponse
// @Router       /api/reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener reporte
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del reporte"
// @Success      200  {object}  dto.ReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id} [get]
func (h *ReportHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "reporte no encontrado")
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err, "reporte no encontrado")
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar reporte en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del reporte"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id}/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	id, ok, err := idParam(c, "reporte no encontrado")
	if !ok {
		return err
	}
	pdf, err := h.uc.RenderPDF(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err, "reporte no encontrado")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-`+id+`.pdf"`)
	return c.Send(pdf)
}
