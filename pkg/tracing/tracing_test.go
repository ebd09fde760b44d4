package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestInit_SinEndpointEsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{ServiceName: "trazabilidad-test"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_ConEndpointHTTP(t *testing.T) {
	// El exporter HTTP no conecta hasta exportar, así que no requiere collector.
	shutdown, err := Init(context.Background(), Config{
		ServiceName: "trazabilidad-test",
		Endpoint:    "http://127.0.0.1:4318",
		SampleRatio: 0.5,
	})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.0, clampRatio(-1))
	assert.Equal(t, 1.0, clampRatio(3))
	assert.Equal(t, 0.3, clampRatio(0.3))
}

func TestMiddleware_PropagaContextoAlHandler(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	app := fiber.New()
	app.Use(Middleware())
	var traceID string
	app.Get("/api/trace/:qr_code_id", func(c *fiber.Ctx) error {
		traceID = trace.SpanContextFromContext(c.UserContext()).TraceID().String()
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/trace/CC-abc", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", traceID, "el span hereda el traceparent entrante")
}
