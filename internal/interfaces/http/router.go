package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/winery-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth       AuthService
	Persons    PersonService
	Categories CategoryService
	Entries    EntryService
	Events     EventService
	Reports    ReportService
	Users      UserService
	Audit      AuditService
	DB         Pinger
	Metrics    *Metrics
	JWTSecret  string
}

// Router registra las rutas de la API.
//   - Lectura: ADMIN y USER.
//   - Escritura y auditoría: solo ADMIN.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.DB))
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.Auth)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Rutas protegidas (requieren Bearer Token)
	secured := func(prefix string) fiber.Router {
		return api.Group(prefix, AuthMiddleware(deps.JWTSecret))
	}
	read := RequireRole(entity.RoleAdmin, entity.RoleUser)
	admin := RequireRole(entity.RoleAdmin)

	persons := secured("/persons")
	personHandler := NewPersonHandler(deps.Persons)
	persons.Get("/", read, personHandler.List)
	persons.Get("/:id", read, personHandler.GetByID)
	persons.Post("/", admin, personHandler.Create)
	persons.Put("/:id", admin, personHandler.Update)
	persons.Delete("/:id", admin, personHandler.Delete)
	persons.Put("/:id/archive", admin, personHandler.Archive)

	categories := secured("/categories")
	categoryHandler := NewCategoryHandler(deps.Categories)
	categories.Get("/", read, categoryHandler.List)
	categories.Get("/:id", read, categoryHandler.GetByID)
	categories.Post("/", admin, categoryHandler.Create)
	categories.Put("/:id", admin, categoryHandler.Update)
	categories.Delete("/:id", admin, categoryHandler.Delete)
	categories.Put("/:id/archive", admin, categoryHandler.Archive)

	entries := secured("/entries")
	entryHandler := NewEntryHandler(deps.Entries)
	entries.Get("/", read, entryHandler.List)
	entries.Get("/:id", read, entryHandler.GetByID)
	entries.Post("/", admin, entryHandler.Create)
	entries.Put("/:id", admin, entryHandler.Update)
	entries.Delete("/:id", admin, entryHandler.Delete)

	events := secured("/events")
	eventHandler := NewEventHandler(deps.Events)
	events.Get("/", read, eventHandler.List)
	events.Get("/:id", read, eventHandler.GetByID)
	events.Post("/", admin, eventHandler.Create)
	events.Put("/:id", admin, eventHandler.Update)
	events.Delete("/:id", admin, eventHandler.Delete)

	reports := secured("/reports")
	reportHandler := NewReportHandler(deps.Reports)
	reports.Get("/summary", read, reportHandler.Summary)
	reports.Get("/summary/pdf", read, reportHandler.SummaryPDF)

	users := secured("/users")
	userHandler := NewUserHandler(deps.Users)
	users.Get("/", read, userHandler.List)
	users.Get("/:id", read, userHandler.GetByID)
	users.Post("/", admin, userHandler.Create)
	users.Put("/:id", admin, userHandler.Update)
	users.Delete("/:id", admin, userHandler.Delete)
	users.Patch("/:id/activate", admin, userHandler.Activate)
	users.Patch("/:id/deactivate", admin, userHandler.Deactivate)

	audit := secured("/audit")
	auditHandler := NewAuditHandler(deps.Audit)
	audit.Get("/", admin, auditHandler.History)
	audit.Get("/entity/:table/:id", admin, auditHandler.EntityHistory)
}
