package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-mesinkasir/internal/config"
	"go-mesinkasir/internal/handler"
	"go-mesinkasir/internal/middleware"
	"go-mesinkasir/internal/model"
	"go-mesinkasir/internal/repository"
	"go-mesinkasir/internal/seed"
	"go-mesinkasir/internal/service"
	"go-mesinkasir/internal/ws"
	"go-mesinkasir/pkg/database"
	"go-mesinkasir/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load Env
	cfg := config.Load()

	// 2. Setup Database
	db, err := database.ConnectDB(database.Options{
		DSN:          cfg.DSN(),
		LogLevel:     cfg.DBLogLevel,
		MaxIdleConns: cfg.DBMaxIdle,
		MaxOpenConns: cfg.DBMaxOpen,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if cfg.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			log.Fatal("Failed to migrate database: ", err)
		}
	}

	repos := repository.NewRepositories(db)

	// 3. Seed default admin and category
	if err := seed.New(repos).Defaults(seed.AdminAccount{
		Username: cfg.SeedAdminUsername,
		Password: cfg.SeedAdminPassword,
		PIN:      cfg.SeedAdminPIN,
	}); err != nil {
		log.Printf("Warning: %v", err)
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	authService := service.NewAuthService(repos.Users, tokens)
	productService := service.NewProductService(repos.Products, repos.Stocks, repos.Categories, repos.ProductStock, wsHub)
	stockService := service.NewStockService(repos.Stocks, repos.Products, repos.ProductStock, repos.Histories, wsHub)
	categoryService := service.NewCategoryService(repos.Categories)

	handlers := &handler.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(productService),
		Stock:    handler.NewStockHandler(stockService),
		Category: handler.NewCategoryHandler(categoryService),
	}

	// 6. Setup Fiber
	app := handler.NewApp(cfg.AppName)

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// 7. Routes
	handler.RegisterRoutes(app.Group("/api"), handlers, middleware.RequireAuth(repos.Users, tokens))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server exited")
}
