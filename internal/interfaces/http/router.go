package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-planilhas/internal/application/auth"
	"github.com/jhoicas/inventario-planilhas/internal/application/inventory"
	"github.com/jhoicas/inventario-planilhas/internal/application/report"
	"github.com/jhoicas/inventario-planilhas/internal/application/usecase"
	"github.com/jhoicas/inventario-planilhas/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	RegistryUC       *usecase.RegistryUseCase
	UserUC           *usecase.UserUseCase
	StoreUC          *usecase.StoreUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	HistoryUC        *report.HistoryUseCase
	ConfirmDelayMs   int
	Gatherer         prometheus.Gatherer // nil deshabilita /metrics
	Service          string
}

// NewApp crea la aplicación Fiber con recover, log de peticiones y manejo de errores uniforme.
func NewApp(name string, log zerolog.Logger, counter RequestCounter) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler,
	})
	app.Use(RequestLogger(log, counter))
	app.Use(recover.New())
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.Service})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Get("/auth/me", authHandler.Me)

	// Catálogo
	productHandler := NewProductHandler(deps.ProductUC, deps.ConfirmDelayMs)
	products := protected.Group("/products")
	products.Get("/", RequireAction(access.ActionViewCatalog), productHandler.List)
	products.Get("/next-id", RequireAction(access.ActionEditCatalog), productHandler.NextID)
	products.Get("/:id", RequireAction(access.ActionViewCatalog), productHandler.GetByID)
	products.Post("/", RequireAction(access.ActionEditCatalog), productHandler.Create)
	products.Put("/:id", RequireAction(access.ActionEditCatalog), productHandler.Update)
	products.Delete("/:id", RequireAction(access.ActionEditCatalog), productHandler.Delete)

	// Movimientos e historial
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.HistoryUC, deps.ConfirmDelayMs)
	protected.Post("/movements", RequireAction(access.ActionApplyMovement), movementHandler.RegisterMovement)
	history := protected.Group("/history", RequireAction(access.ActionViewHistory))
	history.Get("/", movementHandler.History)
	history.Get("/units", movementHandler.HistoryUnits)
	history.Get("/pdf", movementHandler.HistoryPDF)

	// Responsables y unidades
	registryHandler := NewRegistryHandler(deps.RegistryUC, deps.ProductUC, deps.ConfirmDelayMs)
	listRegistry := RequireAction(access.ActionManageRegistry, access.ActionApplyMovement)
	manageRegistry := RequireAction(access.ActionManageRegistry)
	responsibles := protected.Group("/responsibles")
	responsibles.Get("/", listRegistry, registryHandler.ListResponsibles)
	responsibles.Get("/next-id", manageRegistry, registryHandler.NextResponsibleID)
	responsibles.Post("/", manageRegistry, registryHandler.CreateResponsible)
	responsibles.Put("/:id", manageRegistry, registryHandler.UpdateResponsible)
	responsibles.Delete("/:id", manageRegistry, registryHandler.DeleteResponsible)
	units := protected.Group("/units")
	units.Get("/", listRegistry, registryHandler.ListUnits)
	units.Get("/next-id", manageRegistry, registryHandler.NextUnitID)
	units.Post("/", manageRegistry, registryHandler.CreateUnit)
	units.Put("/:id", manageRegistry, registryHandler.UpdateUnit)
	units.Delete("/:id", manageRegistry, registryHandler.DeleteUnit)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC, deps.ConfirmDelayMs)
	users := protected.Group("/users", RequireAction(access.ActionManageUsers))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:username", userHandler.Update)

	// Almacén
	storeHandler := NewStoreHandler(deps.StoreUC)
	storeGroup := protected.Group("/store", RequireAction(access.ActionFlushStore))
	storeGroup.Get("/status", storeHandler.Status)
	storeGroup.Post("/flush", storeHandler.Flush)
}
