package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/audit"
)

// AuditMiddleware registra la respuesta de cada request mutante en la bitácora.
// Debe ir después de AuthMiddleware para tener user_id y company_id en Locals.
func AuditMiddleware(recorder *audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil || recorder == nil {
			return err
		}
		status := c.Response().StatusCode()
		if !audit.ShouldRecord(c.Method(), c.Path(), status, GetUserID(c)) {
			return nil
		}
		// fasthttp reutiliza el buffer de la respuesta.
		body := append([]byte(nil), c.Response().Body()...)
		recorder.Record(c.UserContext(), audit.Entry{
			UserID:    GetUserID(c),
			CompanyID: GetCompanyID(c),
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    status,
			Body:      body,
			IP:        c.IP(),
		})
		return nil
	}
}
