package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Trazabilidad-api/internal/application/audit"
	"github.com/jhoicas/Trazabilidad-api/internal/application/auth"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ingest"
	"github.com/jhoicas/Trazabilidad-api/internal/application/traceability"
	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
	infraai "github.com/jhoicas/Trazabilidad-api/internal/infrastructure/ai"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/cache"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/epcis"
	infrapdf "github.com/jhoicas/Trazabilidad-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Trazabilidad-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Trazabilidad-api/internal/interfaces/http"
	"github.com/jhoicas/Trazabilidad-api/pkg/config"
	"github.com/jhoicas/Trazabilidad-api/pkg/logger"
	"github.com/jhoicas/Trazabilidad-api/pkg/metrics"
	"github.com/jhoicas/Trazabilidad-api/pkg/tracing"
)

// version se sobreescribe en el build: -ldflags "-X main.version=1.2.0".
var version = "dev"

var (
	rootCmd = &cobra.Command{
		Use:   "trazabilidad",
		Short: "API de trazabilidad de cadena de suministro y reportes ESG",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
		SilenceUsage: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd.Context())
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Imprime la versión",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("trazabilidad %s\n", version)
		},
	}
)

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{
		Env:        cfg.App.Env,
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	return cfg, log, nil
}

func migrate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	applied, err := postgres.NewMigrator(pool, log).Up(ctx)
	if err != nil {
		return err
	}
	log.Info().Strs("applied", applied).Msg("migraciones al día")
	return nil
}

func serve() error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", version).
		Msg("iniciando aplicación")

	ctx := context.Background()
	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	m := metrics.New(cfg.Telemetry.MetricsNamespace)

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	factoryRepo := postgres.NewFactoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	deviceRepo := postgres.NewDeviceRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	traceUC := traceability.NewTraceabilityUseCase(txRunner, traceability.Repositories{
		Suppliers:     supplierRepo,
		Factories:     factoryRepo,
		RawMaterials:  postgres.NewRawMaterialRepository(pool),
		Runs:          postgres.NewProductionRunRepository(pool),
		FinishedGoods: postgres.NewFinishedGoodRepository(pool),
		Trace:         postgres.NewTraceRepository(pool),
	}, nil).WithPublishing(epcis.NewExporter(""), pdfGenerator, cfg.App.TracePublicBaseURL+"/")

	factoryUC := usecase.NewFactoryUseCase(factoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)

	// Caché Redis opcional: si no conecta se sigue sin caché.
	if cfg.Redis.URL != "" {
		traceCache, err := cache.NewRedisTraceCache(ctx, cfg.Redis.URL, time.Duration(cfg.Redis.TraceTTLSeconds)*time.Second)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, consulta de trazabilidad sin caché")
		} else {
			defer traceCache.Close()
			traceUC.WithCache(traceCache, m)
			factoryUC.WithTraceInvalidator(traceCache)
			supplierUC.WithTraceInvalidator(traceCache)
		}
	}

	aiClient := infraai.NewReportClient(cfg.AI.ServiceURL, time.Duration(cfg.AI.TimeoutSeconds)*time.Second)
	reportUC := usecase.NewReportUseCase(reportRepo, companyRepo, aiClient, pdfGenerator,
		time.Duration(cfg.AI.TimeoutSeconds)*time.Second, m)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * time.Duration(cfg.AI.TimeoutSeconds+10),
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(tracing.Middleware())
	app.Use(m.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.ReplaceAll(cfg.HTTP.CORSOrigins, " ", ""),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Trazabilidad API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "version": version})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		FactoryUC:      factoryUC,
		SupplierUC:     supplierUC,
		DeviceUC:       usecase.NewDeviceUseCase(deviceRepo, factoryRepo),
		UserUC:         usecase.NewUserUseCase(userRepo),
		TraceabilityUC: traceUC,
		IngestUC:       ingest.NewIngestUseCase(txRunner, deviceRepo, cfg.Ingest.MaxBatch, m),
		ReportUC:       reportUC,
		AuditLogUC:     usecase.NewAuditLogUseCase(auditRepo),
		AuditRecorder:  audit.NewRecorder(auditRepo, log, m),
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
