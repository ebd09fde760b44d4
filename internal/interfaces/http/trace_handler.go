package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/traceability"
)

// TraceHandler libro de trazabilidad: altas autenticadas y consulta pública por QR.
type TraceHandler struct {
	uc *traceability.TraceabilityUseCase
}

// NewTraceHandler construye el handler.
func NewTraceHandler(uc *traceability.TraceabilityUseCase) *TraceHandler {
	return &TraceHandler{uc: uc}
}

// CreateRawMaterial godoc
// @Summary      Registrar lote de materia prima
// @Tags         trace
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRawMaterialRequest  true  "Lote recibido del proveedor"
// @Success      201   {object}  dto.RawMaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/trace/raw-material [post]
func (h *TraceHandler) CreateRawMaterial(c *fiber.Ctx) error {
	var in dto.CreateRawMaterialRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateRawMaterial(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err, "proveedor no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateProductionRun godoc
// @Summary      Registrar corrida de producción con sus insumos
// @Tags         trace
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionRunRequest  true  "Corrida + raw_material_inputs"
// @Success      201   {object}  dto.ProductionRunResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/trace/production-run [post]
func (h *TraceHandler) CreateProductionRun(c *fiber.Ctx) error {
	var in dto.CreateProductionRunRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateProductionRun(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err, "fábrica o lote de materia prima no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateFinishedGood godoc
// @Summary      Registrar lote de producto terminado (genera el QR)
// @Tags         trace
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFinishedGoodRequest  true  "Lote terminado"
// @Success      201   {object}  dto.FinishedGoodResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/trace/finished-good [post]
func (h *TraceHandler) CreateFinishedGood(c *fiber.Ctx) error {
	var in dto.CreateFinishedGoodRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateFinishedGood(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err, "corrida de producción no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetTrace godoc
// @Summary      Consulta pública de la cadena de un producto
// @Tags         trace
// @Produce      json
// @Param        qr_code_id  path  string  true  "Código QR (CC-...)"
// @Success      200  {object}  dto.TraceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trace/{qr_code_id} [get]
func (h *TraceHandler) GetTrace(c *fiber.Ctx) error {
	out, err := h.uc.GetTrace(c.UserContext(), c.Params("qr_code_id"))
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	return c.JSON(out)
}

// ExportEPCIS godoc
// @Summary      Cadena del producto como documento GS1 EPCIS 2.0
// @Tags         trace
// @Produce      xml
// @Param        qr_code_id  path  string  true  "Código QR"
// @Success      200  {string}  string  "EPCISDocument; header Digest: sha-256=<base64>"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trace/{qr_code_id}/epcis [get]
func (h *TraceHandler) ExportEPCIS(c *fiber.Ctx) error {
	doc, digest, err := h.uc.ExportEPCIS(c.UserContext(), c.Params("qr_code_id"))
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set("Digest", digest)
	return c.Send(doc)
}

// Label godoc
// @Summary      Etiqueta PDF con el QR del lote
// @Tags         trace
// @Produce      application/pdf
// @Param        qr_code_id  path  string  true  "Código QR"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trace/{qr_code_id}/label [get]
func (h *TraceHandler) Label(c *fiber.Ctx) error {
	qr := c.Params("qr_code_id")
	pdf, err := h.uc.RenderLabel(c.UserContext(), qr)
	if err != nil {
		return writeError(c, err, "producto no encontrado")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+qr+`.pdf"`)
	return c.Send(pdf)
}

// ListRawMaterials godoc
// @Summary      Listar lotes de materia prima
// @Tags         trace
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.RawMaterialListResponse
// @Router       /api/trace/raw-materials [get]
func (h *TraceHandler) ListRawMaterials(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListRawMaterials(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// ListProductionRuns godoc
// @Summary      Listar corridas de producción
// @Tags         trace
// @Security     Bearer
// @Produce      json
// @Success      200     {object}  dto.ProductionRunListResponse
// @Router       /api/trace/production-runs [get]
func (h *TraceHandler) ListProductionRuns(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListProductionRuns(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// ListFinishedGoods godoc
// @Summary      Listar lotes de producto terminado
// @Tags         trace
// @Security     Bearer
// @Produce      json
// @Success      200     {object}  dto.FinishedGoodListResponse
// @Router       /api/trace/finished-goods [get]
func (h *TraceHandler) ListFinishedGoods(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListFinishedGoods(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
