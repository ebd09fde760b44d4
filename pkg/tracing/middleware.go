package tracing

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jhoicas/Trazabilidad-api/pkg/tracing"

// Middleware abre un span de servidor por request y lo deja en c.UserContext(), así
// las llamadas salientes (cliente de IA con otelhttp) quedan como hijas.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		carrier := propagation.HeaderCarrier(http.Header{})
		c.Request().Header.VisitAll(func(k, v []byte) {
			carrier.Set(string(k), string(v))
		})
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), carrier)

		ctx, span := otel.Tracer(instrumentationName).Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", c.Method()),
				attribute.String("url.path", c.Path()),
			),
		)
		defer span.End()
		c.SetUserContext(ctx)

		err := c.Next()

		status := c.Response().StatusCode()
		if route := c.Route().Path; route != "" {
			span.SetName(c.Method() + " " + route)
			span.SetAttributes(attribute.String("http.route", route))
		}
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if err != nil {
			span.RecordError(err)
		}
		if status >= 500 {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		return err
	}
}
