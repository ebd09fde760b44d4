package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Trazabilidad-api/internal/application/audit"
	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ingest"
	"github.com/jhoicas/Trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	FactoryUC      *usecase.FactoryUseCase
	SupplierUC     *usecase.SupplierUseCase
	DeviceUC       *usecase.DeviceUseCase
	UserUC         *usecase.UserUseCase
	TraceabilityUC *traceability.TraceabilityUseCase
	IngestUC       *ingest.IngestUseCase
	ReportUC       *usecase.ReportUseCase
	AuditLogUC     *usecase.AuditLogUseCase
	AuditRecorder  *audit.Recorder
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Trazabilidad: las consultas por QR son públicas. Los listados fijos se registran
	// antes que /:qr_code_id para que no los capture el parámetro.
	traceHandler := NewTraceHandler(deps.TraceabilityUC)
	authMW := AuthMiddleware(deps.JWTSecret)
	auditMW := AuditMiddleware(deps.AuditRecorder)

	trace := api.Group("/trace")
	trace.Get("/raw-materials", authMW, traceHandler.ListRawMaterials)
	trace.Get("/production-runs", authMW, traceHandler.ListProductionRuns)
	trace.Get("/finished-goods", authMW, traceHandler.ListFinishedGoods)
	trace.Post("/raw-material", authMW, auditMW, traceHandler.CreateRawMaterial)
	trace.Post("/production-run", authMW, auditMW, traceHandler.CreateProductionRun)
	trace.Post("/finished-good", authMW, auditMW, traceHandler.CreateFinishedGood)
	trace.Get("/:qr_code_id/epcis", traceHandler.ExportEPCIS)
	trace.Get("/:qr_code_id/label", traceHandler.Label)
	trace.Get("/:qr_code_id", traceHandler.GetTrace)

	// Rutas protegidas (requieren Bearer Token). El middleware se monta por recurso para
	// que una ruta inexistente bajo /api responda 404 y no 401.
	factories := api.Group("/factories", authMW, auditMW)
	factoryHandler := NewFactoryHandler(deps.FactoryUC)
	factories.Post("/", factoryHandler.Create)
	factories.Get("/", factoryHandler.List)
	factories.Get("/:id", factoryHandler.GetByID)
	factories.Put("/:id", factoryHandler.Update)
	factories.Delete("/:id", factoryHandler.Delete)

	suppliers := api.Group("/suppliers", authMW, auditMW)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	devices := api.Group("/devices", authMW, auditMW)
	deviceHandler := NewDeviceHandler(deps.DeviceUC)
	devices.Post("/", deviceHandler.Create)
	devices.Get("/", deviceHandler.List)
	devices.Get("/:id", deviceHandler.GetByID)
	devices.Put("/:id", deviceHandler.Update)
	devices.Delete("/:id", deviceHandler.Delete)

	// Users: el rol ADMIN para mutaciones lo exige el use case (403 sin cambios).
	users := api.Group("/users", authMW, auditMW)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	ingestHandler := NewIngestHandler(deps.IngestUC)
	api.Post("/ingest/iot", authMW, auditMW, ingestHandler.IngestIoT)

	reports := api.Group("/reports", authMW, auditMW)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Post("/generate", reportHandler.Generate)
	reports.Get("/", reportHandler.List)
	reports.Get("/:id", reportHandler.GetByID)
	reports.Get("/:id/pdf", reportHandler.PDF)

	auditLogs := api.Group("/audit-logs", authMW, RequireRole(entity.RoleAdmin))
	auditLogHandler := NewAuditLogHandler(deps.AuditLogUC)
	auditLogs.Get("/", auditLogHandler.List)
}
