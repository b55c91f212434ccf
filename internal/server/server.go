// Package server wires repositories, services and handlers into a fiber app.
package server

import (
	"go-pos-backend/internal/config"
	"go-pos-backend/internal/handler"
	"go-pos-backend/internal/middleware"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/service"
	"go-pos-backend/internal/storage"
	"go-pos-backend/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// New builds the application. The caller owns db and hub (running and stopping it).
func New(cfg *config.Config, db *gorm.DB, hub *ws.Hub) *fiber.App {
	// Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	userRepo := repository.NewUserRepo(db)
	images := storage.NewImageStore(cfg.UploadDir)

	catalogService := service.NewCatalogService(productRepo, images, hub)
	salesService := service.NewSalesService(saleRepo, productRepo, db, hub)
	reportService := service.NewReportService(saleRepo, productRepo, cfg.Location)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)

	productHandler := handler.NewProductHandler(catalogService, cfg.UploadURLPrefix, cfg.PlaceholderImage)
	salesHandler := handler.NewSalesHandler(salesService)
	dashHandler := handler.NewDashboardHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)

	app := fiber.New(fiber.Config{
		AppName:      "POS Backend v1.0",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: middleware.ErrorHandler,
	})
	middleware.SetupMiddleware(app)

	// Writes are guarded only when REQUIRE_AUTH is on
	guard := func(h fiber.Handler) []fiber.Handler {
		if cfg.RequireAuth {
			return []fiber.Handler{middleware.RequireAuth(authService), h}
		}
		return []fiber.Handler{h}
	}

	// ============ PAGES ============
	app.Get("/", handler.Index)
	app.Get("/dashboard", handler.Dashboard)
	app.Post("/login", authHandler.LoginForm)
	app.Static(cfg.UploadURLPrefix, cfg.UploadDir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "success", "message": "API is healthy"})
	})

	// ============ API ============
	api := app.Group("/api")
	api.Post("/login", authHandler.Login)

	api.Get("/products", productHandler.GetProducts)
	api.Post("/products", guard(productHandler.CreateProduct)...)
	api.Put("/products/:id", guard(productHandler.UpdateProduct)...)
	api.Delete("/products/:id", guard(productHandler.DeleteProduct)...)

	api.Post("/checkout", guard(salesHandler.Checkout)...)
	api.Get("/sales", salesHandler.GetSales)
	api.Get("/stats", dashHandler.GetStats)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Join(c)
		defer hub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	return app
}
