package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/application/audit"
	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ingest"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/epcis"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Trazabilidad-api/internal/interfaces/http"
	"github.com/jhoicas/Trazabilidad-api/internal/testutil/memstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Entorno: router completo sobre repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stubReports struct{}

func (stubReports) GenerateReport(_ context.Context, req ports.ReportRequest) (*ports.GeneratedReport, error) {
	return &ports.GeneratedReport{
		ReportContent: "Reporte " + req.ReportType + " del periodo.",
		Metrics:       map[string]any{"total_kwh": 5.2},
	}, nil
}

type testEnv struct {
	app   *fiber.App
	store *memstore.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memstore.New()
	renderer := pdf.NewMarotoPDFGenerator()

	traceUC := traceability.NewTraceabilityUseCase(store, traceability.Repositories{
		Suppliers:     store.Suppliers(),
		Factories:     store.Factories(),
		RawMaterials:  store.RawMaterials(),
		Runs:          store.Runs(),
		FinishedGoods: store.FinishedGoods(),
		Trace:         store.Trace(),
	}, nil).WithPublishing(epcis.NewExporter(""), renderer, "https://trace.test/api/trace/")

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), store.Companies(), store, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		FactoryUC:      usecase.NewFactoryUseCase(store.Factories()),
		SupplierUC:     usecase.NewSupplierUseCase(store.Suppliers()),
		DeviceUC:       usecase.NewDeviceUseCase(store.Devices(), store.Factories()),
		UserUC:         usecase.NewUserUseCase(store.Users()),
		TraceabilityUC: traceUC,
		IngestUC:       ingest.NewIngestUseCase(store, store.Devices(), 100, nil),
		ReportUC:       usecase.NewReportUseCase(store.Reports(), store.Companies(), stubReports{}, renderer, 0, nil),
		AuditLogUC:     usecase.NewAuditLogUseCase(store.AuditLogs()),
		AuditRecorder:  audit.NewRecorder(store.AuditLogs(), nil, nil),
		JWTSecret:      testJWTSecret,
	})
	return &testEnv{app: app, store: store}
}

// call lanza la petición y devuelve status y cuerpo. body string se envía tal cual.
func (e *testEnv) call(t *testing.T, method, path, token string, body any) (int, []byte, http.Header) {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out, resp.Header
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}

// register crea una empresa y devuelve el token de su ADMIN.
func (e *testEnv) register(t *testing.T, prefix string) string {
	t.Helper()
	status, raw, _ := e.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"company_name":  "Textiles " + prefix,
		"company_email": prefix + "@empresa.test",
		"first_name":    "Ana",
		"last_name":     "Pérez",
		"email":         "admin@" + prefix + ".test",
		"password":      "secreto123",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode(t, raw)["access_token"].(string)
}

func (e *testEnv) create(t *testing.T, token, path string, body any) map[string]any {
	t.Helper()
	status, raw, _ := e.call(t, http.MethodPost, path, token, body)
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode(t, raw)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaEmpresaYAdmin(t *testing.T) {
	env := newTestEnv(t)
	status, raw, _ := env.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"company_name":  "Textiles Andinos",
		"company_email": "contacto@andinos.test",
		"first_name":    "Ana",
		"last_name":     "Pérez",
		"email":         "Ana@Andinos.test",
		"password":      "secreto123",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	body := decode(t, raw)
	assert.NotEmpty(t, body["access_token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ADMIN", user["role"])
	assert.Equal(t, "ana@andinos.test", user["email"])
	assert.NotContains(t, string(raw), "password")
	company := body["company"].(map[string]any)
	assert.Equal(t, company["id"], user["company_id"])
}

func TestRegister_EmailDeEmpresaDuplicado_409SinCambios(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "acme")

	status, raw, _ := env.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"company_name":  "Otra",
		"company_email": "acme@empresa.test",
		"first_name":    "Luis",
		"last_name":     "Gómez",
		"email":         "luis@otra.test",
		"password":      "secreto123",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", decode(t, raw)["code"])
	assert.Equal(t, 1, env.store.CountCompanies())
	assert.Equal(t, 1, env.store.CountUsers())
}

func TestRegister_PasswordCorto_400Validation(t *testing.T) {
	env := newTestEnv(t)
	status, raw, _ := env.call(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"company_name":  "Acme",
		"company_email": "acme@empresa.test",
		"first_name":    "Ana",
		"last_name":     "Pérez",
		"email":         "ana@acme.test",
		"password":      "corto",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	body := decode(t, raw)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Contains(t, body["message"], "password")
}

func TestLogin_PasswordIncorrecto_401(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "acme")

	status, raw, _ := env.call(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "admin@acme.test", "password": "otra-clave-123",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", decode(t, raw)["code"])

	status, raw, _ = env.call(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "admin@acme.test", "password": "secreto123",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.NotEmpty(t, decode(t, raw)["access_token"])
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD por empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestFactories_CrudYOtraEmpresaRecibe404(t *testing.T) {
	env := newTestEnv(t)
	tokA := env.register(t, "a")
	tokB := env.register(t, "b")

	f := env.create(t, tokA, "/api/factories", map[string]any{"name": "Planta Norte", "city": "Medellín", "country": "CO"})
	path := "/api/factories/" + f["id"].(string)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		var body any
		if method == http.MethodPut {
			body = map[string]any{"name": "Robada"}
		}
		status, raw, _ := env.call(t, method, path, tokB, body)
		assert.Equal(t, http.StatusNotFound, status, method)
		assert.Equal(t, "NOT_FOUND", decode(t, raw)["code"], method)
	}

	status, raw, _ := env.call(t, http.MethodPut, path, tokA, map[string]any{"city": "Bogotá"})
	require.Equal(t, http.StatusOK, status, string(raw))
	updated := decode(t, raw)
	assert.Equal(t, "Planta Norte", updated["name"], "merge parcial conserva el nombre")
	assert.Equal(t, "Bogotá", updated["city"])

	status, raw, _ = env.call(t, http.MethodDelete, path, tokA, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "fábrica eliminada", decode(t, raw)["message"])

	status, _, _ = env.call(t, http.MethodGet, path, tokA, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFactories_BodyMalformado_400(t *testing.T) {
	env := newTestEnv(t)
	tok := env.register(t, "a")

	status, raw, _ := env.call(t, http.MethodPost, "/api/factories", tok, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", decode(t, raw)["code"])

	status, raw, _ = env.call(t, http.MethodPost, "/api/factories", tok, map[string]any{"city": "Cali"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode(t, raw)["code"])
}

func TestRutaProtegida_SinToken_401(t *testing.T) {
	env := newTestEnv(t)
	status, raw, _ := env.call(t, http.MethodGet, "/api/factories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", decode(t, raw)["code"])
}

func TestDevices_FabricaDeOtraEmpresa_404(t *testing.T) {
	env := newTestEnv(t)
	tokA := env.register(t, "a")
	tokB := env.register(t, "b")
	fb := env.create(t, tokB, "/api/factories", map[string]any{"name": "Planta B"})

	status, _, _ := env.call(t, http.MethodPost, "/api/devices", tokA, map[string]any{
		"factory_id": fb["id"], "device_name": "Medidor", "device_id": "D1", "device_type": "ENERGY",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios y roles
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_SoloAdminPuedeMutar(t *testing.T) {
	env := newTestEnv(t)
	admin := env.register(t, "a")

	viewer := env.create(t, admin, "/api/users", map[string]any{
		"first_name": "Vera", "last_name": "Ruiz", "email": "vera@a.test", "password": "secreto123",
	})
	assert.Equal(t, "VIEWER", viewer["role"], "rol por defecto")
	assert.NotContains(t, viewer, "password_hash")

	status, raw, _ := env.call(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "vera@a.test", "password": "secreto123",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	viewerTok := decode(t, raw)["access_token"].(string)
	usersBefore := env.store.CountUsers()

	status, raw, _ = env.call(t, http.MethodPost, "/api/users", viewerTok, map[string]any{
		"first_name": "X", "last_name": "Y", "email": "x@a.test", "password": "secreto123",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", decode(t, raw)["code"])

	status, _, _ = env.call(t, http.MethodDelete, "/api/users/"+viewer["id"].(string), viewerTok, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, usersBefore, env.store.CountUsers(), "sin cambios")

	status, _, _ = env.call(t, http.MethodGet, "/api/audit-logs", viewerTok, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _, _ = env.call(t, http.MethodGet, "/api/users", viewerTok, nil)
	assert.Equal(t, http.StatusOK, status, "lectura permitida a cualquier rol")
}

func TestUsers_EmailDuplicado_409(t *testing.T) {
	env := newTestEnv(t)
	admin := env.register(t, "a")

	status, raw, _ := env.call(t, http.MethodPost, "/api/users", admin, map[string]any{
		"first_name": "Otro", "last_name": "Admin", "email": "admin@a.test", "password": "secreto123",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", decode(t, raw)["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestAudit_MutacionExitosaQuedaEnBitacora(t *testing.T) {
	env := newTestEnv(t)
	tok := env.register(t, "a")
	require.Empty(t, env.store.AllAuditLogs(), "/api/auth no se audita")

	f := env.create(t, tok, "/api/factories", map[string]any{"name": "Planta"})
	env.call(t, http.MethodPost, "/api/factories", tok, map[string]any{"city": "sin nombre"})
	env.call(t, http.MethodGet, "/api/factories", tok, nil)

	logs := env.store.AllAuditLogs()
	require.Len(t, logs, 1, "solo el POST 2xx")
	assert.Equal(t, "CREATE_FACTORIES", logs[0].ActionType)
	assert.Equal(t, "factories", logs[0].TargetResourceType)
	assert.Equal(t, f["id"], logs[0].TargetResourceID)
	assert.Equal(t, "Planta", logs[0].AfterValue["name"])

	status, raw, _ := env.call(t, http.MethodGet, "/api/audit-logs", tok, nil)
	require.Equal(t, http.StatusOK, status)
	items := decode(t, raw)["items"].([]any)
	assert.Len(t, items, 1)
}

func TestAudit_UsuarioCreadoSinPassword(t *testing.T) {
	env := newTestEnv(t)
	tok := env.register(t, "a")
	env.create(t, tok, "/api/users", map[string]any{
		"first_name": "Vera", "last_name": "Ruiz", "email": "vera@a.test", "password": "secreto123",
	})

	logs := env.store.AllAuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, "CREATE_USERS", logs[0].ActionType)
	assert.NotContains(t, logs[0].AfterValue, "password")
	assert.NotContains(t, logs[0].AfterValue, "password_hash")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ingesta IoT
// ──────────────────────────────────────────────────────────────────────────────

func TestIngest_LecturaDeEnergia(t *testing.T) {
	env := newTestEnv(t)
	tok := env.register(t, "a")
	f := env.create(t, tok, "/api/factories", map[string]any{"name": "Planta"})
	env.create(t, tok, "/api/devices", map[string]any{
		"factory_id": f["id"], "device_name": "Medidor", "device_id": "D1", "device_type": "ENERGY",
	})

	status, raw, _ := env.call(t, http.MethodPost, "/api/ingest/iot", tok,
		`[{"device_id":"D1","timestamp":"2024-01-15T10:00:00Z","kwh":5.2},{"device_id":"NOPE","timestamp":"2024-01-15T10:00:00Z","kwh":1}]`)
	require.Equal(t, http.StatusOK, status, string(raw))

	body := decode(t, raw)
	assert.EqualValues(t, 1, body["success"])
	assert.EqualValues(t, 1, body["failed"])
	assert.Len(t, body["errors"], 1)
	require.Len(t, env.store.Energy, 1)
	assert.Equal(t, "5.2", env.store.Energy[0].Kwh.String())
}

func TestIngest_BodyNoEsArreglo_400(t *testing.T) {
	env := newTestEnv(t)
	tok := env.register(t, "a")

	status, raw, _ := env.call(t, http.MethodPost, "/api/ingest/iot", tok, `{"device_id":"D1"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", decode(t, raw)["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Trazabilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestTrace_QRDesconocido_404(t *testing.T) {
	env := newTestEnv(t)
	status, raw, _ := env.call(t, http.MethodGet, "/api/trace/CC-noexiste0000", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode(t, raw)["code"])
}

func TestTrace_CadenaCompletaPublica(t *testing.T) {
	env := newTestEnv(t)
	tok := env.register(t, "a")

	f := env.create(t, tok, "/api/factories", map[string]any{"name": "Planta Norte", "city": "Medellín", "country": "CO"})
	s := env.create(t, tok, "/api/suppliers", map[string]any{"name": "Algodones del Sur", "country": "PE"})
	rm := env.create(t, tok, "/api/trace/raw-material", map[string]any{
		"supplier_id": s["id"], "material_name": "Algodón", "batch_number": "L-1",
		"quantity": "500", "received_date": "2024-01-10",
	})
	run := env.create(t, tok, "/api/trace/production-run", map[string]any{
		"factory_id": f["id"], "run_number": "R-1", "start_date": "2024-01-12",
		"raw_material_inputs": []map[string]any{{"raw_material_batch_id": rm["id"], "quantity_used": "120"}},
	})
	fg := env.create(t, tok, "/api/trace/finished-good", map[string]any{
		"production_run_id": run["id"], "product_name": "Camiseta", "quantity": 300, "production_date": "2024-01-20",
	})
	qr := fg["qr_code_id"].(string)
	assert.True(t, strings.HasPrefix(qr, "CC-"))

	status, raw, _ := env.call(t, http.MethodGet, "/api/trace/"+qr, "", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	trace := decode(t, raw)
	assert.Equal(t, run["id"], trace["finished_good"].(map[string]any)["production_run_id"])
	assert.Len(t, trace["raw_materials"], 1)

	status, raw, hdr := env.call(t, http.MethodGet, "/api/trace/"+qr+"/epcis", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, strings.HasPrefix(hdr.Get("Digest"), "sha-256="))
	assert.Contains(t, string(raw), "EPCISDocument")

	status, raw, hdr = env.call(t, http.MethodGet, "/api/trace/"+qr+"/label", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/pdf", hdr.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	status, raw, _ = env.call(t, http.MethodGet, "/api/trace/finished-goods", tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode(t, raw)["items"], 1)

	logs := env.store.AllAuditLogs()
	actions := make([]string, 0, len(logs))
	for _, l := range logs {
		actions = append(actions, l.ActionType)
	}
	assert.Contains(t, actions, "CREATE_TRACE")
}

func TestTrace_ListadosRequierenToken(t *testing.T) {
	env := newTestEnv(t)
	status, _, _ := env.call(t, http.MethodGet, "/api/trace/raw-materials", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestReports_GenerarListarYPDF(t *testing.T) {
	env := newTestEnv(t)
	tok := env.register(t, "a")

	rep := env.create(t, tok, "/api/reports/generate", map[string]any{
		"report_type": "GRI", "start_date": "2024-01-01", "end_date": "2024-03-31",
	})
	assert.Equal(t, "Reporte GRI del periodo.", rep["report_content"])
	assert.Equal(t, 5.2, rep["metrics"].(map[string]any)["total_kwh"])

	status, raw, _ := env.call(t, http.MethodGet, "/api/reports", tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(raw), "report_content")

	status, raw, _ = env.call(t, http.MethodGet, "/api/reports/"+rep["id"].(string)+"/pdf", tok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestReports_PeriodoInvertido_400(t *testing.T) {
	env := newTestEnv(t)
	tok := env.register(t, "a")

	status, raw, _ := env.call(t, http.MethodPost, "/api/reports/generate", tok, map[string]any{
		"report_type": "CSDDD", "start_date": "2024-03-31", "end_date": "2024-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode(t, raw)["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas y errores
// ──────────────────────────────────────────────────────────────────────────────

func TestRutas_IDMalFormado_404(t *testing.T) {
	env := newTestEnv(t)
	tok := env.register(t, "a")

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/factories/abc"},
		{http.MethodPut, "/api/factories/abc"},
		{http.MethodDelete, "/api/factories/abc"},
		{http.MethodGet, "/api/suppliers/123"},
		{http.MethodDelete, "/api/devices/no-es-uuid"},
		{http.MethodGet, "/api/users/abc"},
		{http.MethodGet, "/api/reports/abc"},
		{http.MethodGet, "/api/reports/abc/pdf"},
	} {
		var body any
		if tc.method == http.MethodPut {
			body = map[string]any{"name": "x"}
		}
		status, raw, _ := env.call(t, tc.method, tc.path, tok, body)
		assert.Equal(t, http.StatusNotFound, status, tc.method+" "+tc.path)
		assert.Equal(t, "NOT_FOUND", decode(t, raw)["code"], tc.method+" "+tc.path)
	}
}

func TestRutaInexistente_404SinToken(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/api/nope", "/api/trace/", "/api/inventario/items"} {
		status, raw, _ := env.call(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, status, path)
		assert.Equal(t, "NOT_FOUND", decode(t, raw)["code"], path)
	}

	status, _, _ := env.call(t, http.MethodGet, "/api/factories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status, "el recurso existe y sigue protegido")
}

func TestErrorInterno_NoExponeDetalle(t *testing.T) {
	store := memstore.New()
	// Sin WithPublishing la exportación EPCIS falla con un error interno.
	traceUC := traceability.NewTraceabilityUseCase(store, traceability.Repositories{Trace: store.Trace()}, nil)
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{TraceabilityUC: traceUC, JWTSecret: testJWTSecret})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/trace/CC-abcdefghijkl/epcis", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decode(t, raw)
	assert.Equal(t, "INTERNAL", body["code"])
	assert.Equal(t, "error interno del servidor", body["message"])
	assert.NotContains(t, string(raw), "EPCIS")
}
