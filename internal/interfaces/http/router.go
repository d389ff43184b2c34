package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/optica-erp/internal/application/inventory"
	"github.com/jhoicas/optica-erp/internal/application/sales"
	"github.com/jhoicas/optica-erp/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClientUC         *usecase.ClientUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	InventoryQuery   *inventory.QueryUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	SalesUC          *sales.UseCase
	JWTSecret        string
}

// AppConfig configuración de Fiber para la API. Immutable: los ids de la ruta se guardan
// (referenceId del libro) y no pueden compartir el buffer de la request.
func AppConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		Immutable:    true,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Todas las rutas de /api requieren Bearer Token
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	managers := RequireRole(RoleAdmin, RoleGerente)

	// Sales
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id/items", saleHandler.ReplaceItems)
	salesGroup.Post("/:id/confirm", saleHandler.Confirm)
	salesGroup.Post("/:id/status", saleHandler.Advance)
	salesGroup.Post("/:id/payments", saleHandler.RegisterPayment)
	salesGroup.Get("/:id/payments", saleHandler.ListPayments)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Delete("/:id", saleHandler.Cancel)

	// Clients
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Inventory: las rutas fijas van antes de /:productId
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.InventoryQuery, deps.Replenishment)
	inv.Post("/movements", managers, inventoryHandler.RegisterMovement)
	inv.Get("/movements/export", inventoryHandler.ExportMovements)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/replenishment", inventoryHandler.GetReplenishmentList)
	inv.Get("/", inventoryHandler.ListRecords)
	inv.Get("/:productId", inventoryHandler.GetRecord)
	inv.Put("/:productId/levels", managers, inventoryHandler.SetLevels)
}
