package handler

import (
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth     *AuthHandler
	Product  *ProductHandler
	Stock    *StockHandler
	Category *CategoryHandler
}

// NewApp builds the fiber app with the envelope error handler installed.
func NewApp(appName string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: ErrorHandler,
	})
}

// RegisterRoutes mounts every endpoint under api. requireAuth guards
// everything except login and health.
func RegisterRoutes(api fiber.Router, h *Handlers, requireAuth fiber.Handler) {
	api.Get("/health", func(c *fiber.Ctx) error {
		return respond(c, fiber.StatusOK, "OK", nil)
	})

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/login-pin", h.Auth.LoginPIN)
	auth.Get("/me", requireAuth, h.Auth.Me)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	protected.Get("/categories", h.Category.GetCategories)
	protected.Post("/categories", h.Category.CreateCategory)

	// stocks-master must be registered before /products/:id
	protected.Get("/products/stocks-master", h.Product.GetStockMaster)
	protected.Get("/products", h.Product.GetProducts)
	protected.Post("/products", h.Product.CreateProduct)
	protected.Get("/products/:id", h.Product.GetProduct)
	protected.Patch("/products/:id", h.Product.UpdateProduct)
	protected.Put("/products/:id", h.Product.UpdateProduct)
	protected.Delete("/products/:id", h.Product.DeleteProduct)
	protected.Get("/products/:id/stocks", h.Product.GetProductStocks)
	protected.Post("/products/:id/stocks", h.Product.AttachStock)
	protected.Patch("/products/:id/stocks/:stockId", h.Product.UpdateAttachedStock)
	protected.Delete("/products/:id/stocks/:stockId", h.Product.DetachStock)

	protected.Get("/stocks", h.Stock.GetStocks)
	protected.Post("/stocks", h.Stock.CreateStock)
	protected.Get("/stocks/products/:id/stocks", h.Stock.GetProductStocks)
	protected.Post("/stocks/products/:id/stocks", h.Stock.AttachToProduct)
	protected.Patch("/stocks/products/:id/stocks/:stockId", h.Stock.UpdateProductStock)
	protected.Delete("/stocks/products/:id/stocks/:stockId", h.Stock.DetachFromProduct)
	protected.Get("/stocks/:id", h.Stock.GetStock)
	protected.Patch("/stocks/:id", h.Stock.UpdateStock)
	protected.Put("/stocks/:id", h.Stock.UpdateStock)
	protected.Delete("/stocks/:id", h.Stock.DeleteStock)
	protected.Get("/stocks/:id/histories", h.Stock.GetStockHistories)
}
