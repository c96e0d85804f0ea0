package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/winery-api/internal/application/auth"
	"github.com/jhoicas/winery-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/winery-api/internal/infrastructure/pdf"
	"github.com/jhoicas/winery-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/winery-api/internal/interfaces/http"
	"github.com/jhoicas/winery-api/pkg/config"
	"github.com/jhoicas/winery-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	personRepo := postgres.NewPersonRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditUC := usecase.NewAuditUseCase(auditRepo, log)
	personUC := usecase.NewPersonUseCase(personRepo, txRunner, auditUC)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, txRunner, auditUC)
	entryUC := usecase.NewEntryUseCase(entryRepo, personRepo, categoryRepo, txRunner, auditUC)
	eventUC := usecase.NewEventUseCase(eventRepo, txRunner, auditUC)
	userUC := usecase.NewUserUseCase(userRepo, txRunner, auditUC)
	reportUC := usecase.NewReportUseCase(entryRepo, infrapdf.NewSummaryRenderer(cfg.App.Name))
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:            cfg.JWT.Secret,
		ExpMinutes:        cfg.JWT.Expiration,
		RefreshExpMinutes: cfg.JWT.RefreshExpiration,
		Issuer:            cfg.JWT.Issuer,
	}, log)

	if cfg.App.SeedDefaultUsers {
		created, err := userUC.EnsureDefaultUsers(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("usuarios por defecto")
		}
		if len(created) > 0 {
			log.Info().Strs("users", created).Msg("usuarios por defecto creados")
		}
	}

	app := fiber.New(httpRouter.ServerConfig(cfg.App.Name, cfg.HTTP.TrustedProxies))
	metrics := httpRouter.NewMetrics("winery")

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: httpRouter.LocalRequestID,
	}))
	app.Use(httpRouter.RequestContext())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log))
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Winery API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("sin especificación OpenAPI, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:       authUC,
		Persons:    personUC,
		Categories: categoryUC,
		Entries:    entryUC,
		Events:     eventUC,
		Reports:    reportUC,
		Users:      userUC,
		Audit:      auditUC,
		DB:         pool,
		Metrics:    metrics,
		JWTSecret:  cfg.JWT.Secret,
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
}
