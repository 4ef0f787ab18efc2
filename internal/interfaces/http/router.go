package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amortiplus/consola-api/internal/application/auth"
	appbom "github.com/amortiplus/consola-api/internal/application/bom"
	"github.com/amortiplus/consola-api/internal/application/inventory"
	"github.com/amortiplus/consola-api/internal/application/sales"
	"github.com/amortiplus/consola-api/internal/application/usecase"
	"github.com/amortiplus/consola-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	BOMUC            *appbom.UseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	LedgerQueries    *inventory.LedgerQueryUseCase
	CreateOrder      *sales.CreateOrderUseCase
	TransitionOrder  *sales.TransitionOrderUseCase
	OrderQueries     *sales.OrderQueryUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	bomHandler := NewBOMHandler(deps.BOMUC)
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.LedgerQueries)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Post("/import", RequireRole(entity.RoleAdmin), productHandler.Import)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)
	products.Get("/:id/bom", bomHandler.ListByParent)
	products.Get("/:id/explode", bomHandler.Explode)
	products.Get("/:id/movements", inventoryHandler.ListByProduct)

	// BOM edges (protegido)
	bomGroup := protected.Group("/bom")
	bomGroup.Post("/", bomHandler.CreateEdge)
	bomGroup.Delete("/:id", bomHandler.DeleteEdge)

	// Inventory ledger (protegido)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.RegisterMovement)
	invGroup.Get("/reservations", inventoryHandler.ActiveReservations)

	// Orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.TransitionOrder, deps.OrderQueries)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/transition", orderHandler.Transition)
	orders.Get("/:id/dispatch-note", orderHandler.DispatchNote)
}
