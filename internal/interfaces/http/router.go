package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/inventory"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger        *inventory.LedgerUseCase
	Queries       *inventory.InventoryQueryUseCase
	Replenishment *inventory.ReplenishmentUseCase
	JWTSecret     string
	ServiceName   string
	HealthCheck   func(context.Context) error // nil = siempre ok
	Logger        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	app.Use(RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(c.UserContext()); err != nil {
				log.Warn().Err(err).Msg("health check falló")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": deps.ServiceName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(RoleAdmin, RoleManager, RoleStaff)
	managers := RequireRole(RoleAdmin, RoleManager)

	// Inventory: low-stock y reorder-suggestions antes de /:productId
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Queries, deps.Replenishment, log)
	invGroup.Get("/", anyRole, inventoryHandler.List)
	invGroup.Get("/low-stock", anyRole, inventoryHandler.LowStock)
	invGroup.Get("/reorder-suggestions", anyRole, inventoryHandler.ReorderSuggestions)
	invGroup.Post("/adjust", managers, inventoryHandler.Adjust)
	invGroup.Get("/:productId", anyRole, inventoryHandler.Get)
	invGroup.Get("/:productId/history", anyRole, inventoryHandler.History)
	invGroup.Put("/:productId/reorder-level", managers, inventoryHandler.SetReorderLevel)

	// Purchases
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.Ledger, log)
	purchases.Post("/", managers, purchaseHandler.Create)

	// Sales
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Ledger, log)
	sales.Post("/", anyRole, saleHandler.Create)
}
