package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/purchasing"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	SupplierUC *usecase.SupplierUseCase
	UserUC     *usecase.UserUseCase
	AIUC       *usecase.AIUseCase
	StockUC    *stock.UseCase
	OrderUC    *purchasing.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Toda la API exige Bearer Token;
// las escrituras de inventario piden además rol admin o bodeguero y la
// administración de usuarios y los hard deletes son solo de admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	admin := RequireRole(entity.RoleAdmin)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/restore", productHandler.Restore)
	products.Delete("/:id/hard", admin, productHandler.HardDelete)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Patch("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)
	categories.Post("/:id/restore", categoryHandler.Restore)
	categories.Delete("/:id/hard", admin, categoryHandler.HardDelete)

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Patch("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)
	suppliers.Post("/:id/restore", supplierHandler.Restore)
	suppliers.Delete("/:id/hard", admin, supplierHandler.HardDelete)

	// Stock y libro de movimientos
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Get("/reports/low", stockHandler.LowStockReport)
	stockGroup.Get("/:id", stockHandler.Get)
	stockGroup.Get("/:id/transactions", stockHandler.Transactions)
	stockGroup.Post("/:id/receive", warehouse, stockHandler.Receive)
	stockGroup.Post("/:id/issue", warehouse, stockHandler.Issue)
	stockGroup.Post("/:id/adjust", warehouse, stockHandler.Adjust)
	stockGroup.Post("/:id/reserve", stockHandler.Reserve)
	stockGroup.Post("/:id/release", stockHandler.Release)
	stockGroup.Put("/:id/reorder-point", warehouse, stockHandler.SetReorderPoint)

	// Purchase orders
	orders := api.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.OrderUC)
	orders.Post("/", warehouse, orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/pdf", orderHandler.PDF)
	orders.Patch("/:id", warehouse, orderHandler.Update)
	orders.Post("/:id/approve", warehouse, orderHandler.Approve)
	orders.Post("/:id/cancel", warehouse, orderHandler.Cancel)
	orders.Post("/:id/receive", warehouse, orderHandler.Receive)
	orders.Delete("/:id", warehouse, orderHandler.Delete)
	orders.Post("/:id/restore", warehouse, orderHandler.Restore)
	orders.Delete("/:id/hard", admin, orderHandler.HardDelete)

	// Users (solo admin)
	users := api.Group("/users", admin)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/restore", userHandler.Restore)
	users.Delete("/:id/hard", userHandler.HardDelete)

	// Utilidades de IA
	ai := api.Group("/ai")
	aiHandler := NewAIHandler(deps.AIUC)
	ai.Post("/describe-product", aiHandler.DescribeProduct)
	ai.Post("/suggest-category", aiHandler.SuggestCategory)
}
