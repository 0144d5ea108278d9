package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Albierrto/borts-books-sub000/config"
	"github.com/Albierrto/borts-books-sub000/handlers"
	"github.com/Albierrto/borts-books-sub000/internal/cache"
	"github.com/Albierrto/borts-books-sub000/internal/events"
	"github.com/Albierrto/borts-books-sub000/internal/inventory"
	"github.com/Albierrto/borts-books-sub000/internal/ws"
	"github.com/Albierrto/borts-books-sub000/middleware"
	"github.com/Albierrto/borts-books-sub000/utils"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.LoadConfig()

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if os.Getenv("DB_RESET") == "true" {
		if err := config.ResetAndMigrate(db, cfg); err != nil {
			log.Fatal("Failed to reset database:", err)
		}
	} else {
		if err := config.Migrate(db); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		config.SeedAdmin(db, cfg)
		config.SeedProducts(db)
	}

	// Live inventory feed for admin dashboards
	hub := ws.NewHub()
	go hub.Run()

	// Optional broker for reorder/stock events
	var publisher *events.Publisher
	if cfg.RabbitURL != "" {
		publisher, err = events.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
	}

	// Optional read cache for analytics and low-stock views
	var viewCache *cache.Cache
	if cfg.RedisAddr != "" {
		viewCache, err = cache.New(cfg.RedisAddr)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
	}

	inventoryService := inventory.NewService(db,
		inventory.WithNotifier(&events.InventoryNotifier{Hub: hub, Publisher: publisher}),
		inventory.WithCache(viewCache),
	)

	authHandler := handlers.NewAuthHandler(db)
	productHandler := handlers.NewProductHandler(db, inventoryService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)

	app := fiber.New(fiber.Config{
		AppName:      "Borts Books Backend",
		ServerHeader: "Borts Books Server/1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Default 500 statuscode
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			// Retrieve the custom statuscode if it's a *fiber.Error
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				msg = e.Message
			}

			// Send custom error page
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		},
	})

	middleware.SetupMiddleware(app)

	// Health Check Endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "API is healthy",
		})
	})

	// Public storefront
	app.Post("/api/auth/login", authHandler.Login)
	app.Get("/api/products", productHandler.GetAllProducts)
	app.Get("/api/products/:id", productHandler.GetProduct)

	// Checkout collaborator (any authenticated caller)
	app.Post("/api/inventory/sale", utils.AuthMiddleware, inventoryHandler.RecordSale)

	// Admin back-office
	admin := app.Group("/api/admin", utils.AuthMiddleware, utils.AdminRequired)
	admin.Post("/products", productHandler.CreateProduct)
	admin.Put("/products/:id", productHandler.UpdateProduct)
	admin.Delete("/products/:id", productHandler.DeleteProduct)
	admin.Post("/inventory/restock", inventoryHandler.Restock)
	admin.Post("/inventory/adjust", inventoryHandler.AdjustStock)
	admin.Put("/inventory/settings/:productId", inventoryHandler.UpdateSettings)
	admin.Get("/inventory/settings/:productId", inventoryHandler.GetSettings)
	admin.Get("/inventory/low-stock", inventoryHandler.GetLowStock)
	admin.Get("/inventory/analytics", inventoryHandler.GetAnalytics)
	admin.Get("/inventory/logs", inventoryHandler.GetLogs)
	admin.Get("/inventory/export", inventoryHandler.ExportCSV)

	// Live inventory feed
	app.Get("/ws/inventory", utils.AuthMiddleware, utils.AdminRequired, handlers.WSUpgrade, handlers.InventoryFeed(hub))

	middleware.SetupErrorHandler(app)

	go func() {
		log.Printf("🚀 Server starting on host %s in port %s mode", cfg.HOST, cfg.AppPort)
		if err := app.Listen(cfg.HOST + ":" + cfg.AppPort); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.ShutdownWithContext(ctx)
			},
			"rabbitmq": func(ctx context.Context) error {
				return publisher.Close()
			},
			"redis": func(ctx context.Context) error {
				return viewCache.Close()
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}
