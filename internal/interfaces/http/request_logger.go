package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/pkg/logger"
)

// RequestLogger una línea por request. 5xx en nivel error, 4xx en warn.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler escriba la respuesta antes de leer el status.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ev = ev.Str("request_id", rid)
		}
		if companyID := GetCompanyID(c); companyID != "" {
			ev = ev.Str("company_id", companyID)
		}
		if cause, ok := c.Locals(localsError).(error); ok {
			ev = ev.Err(cause)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}
