package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/propertyflow/propertyflow/internal/config"
	"github.com/propertyflow/propertyflow/internal/database"
	"github.com/propertyflow/propertyflow/internal/handlers"
	"github.com/propertyflow/propertyflow/internal/middleware"
	"github.com/propertyflow/propertyflow/internal/types"

	_ "github.com/propertyflow/propertyflow/docs/api" // Swagger docs
)

// @title PropertyFlow API
// @version 1.0.0
// @description Property portfolio management service with CSV import and export

// @contact.name API Support
// @contact.url https://github.com/propertyflow/propertyflow

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name pf_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("propertyflow")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	authHandler := &handlers.AuthHandler{Cfg: cfg}
	propertyHandler := &handlers.PropertyHandler{DB: db}
	unitHandler := &handlers.UnitHandler{DB: db}
	rentHandler := &handlers.RentHistoryHandler{DB: db}
	transferHandler := &handlers.TransferHandler{DB: db}
	statsHandler := &handlers.StatsHandler{DB: db}
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}

	app.Get("/health", healthHandler.Health)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	// Session routes
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)
	api.Get("/auth/session", middleware.AuthUser(cfg), authHandler.Session)

	// Everything below requires a valid session
	authed := api.Group("", middleware.AuthUser(cfg))

	// Property routes
	authed.Get("/properties", propertyHandler.ListProperties)
	authed.Post("/properties", propertyHandler.CreateProperty)
	authed.Get("/properties/:id", propertyHandler.GetProperty)
	authed.Put("/properties/:id", propertyHandler.UpdateProperty)
	authed.Delete("/properties/:id", propertyHandler.DeleteProperty)

	// Unit routes
	authed.Get("/properties/:id/units", unitHandler.ListUnits)
	authed.Post("/properties/:id/units", unitHandler.CreateUnit)
	authed.Get("/units/:id", unitHandler.GetUnit)
	authed.Put("/units/:id", unitHandler.UpdateUnit)
	authed.Delete("/units/:id", unitHandler.DeleteUnit)

	// Rent history routes
	authed.Get("/units/:id/rent-history", rentHandler.ListRentHistory)
	authed.Post("/units/:id/rent-history", rentHandler.UpsertRentRecord)
	authed.Put("/rent-history/:id", rentHandler.UpdateRentRecord)
	authed.Delete("/rent-history/:id", rentHandler.DeleteRentRecord)

	// CSV import and export routes
	authed.Post("/import/validate", transferHandler.ValidateImport)
	authed.Post("/import", transferHandler.RunImport)
	authed.Get("/export/properties", transferHandler.ExportProperties)
	authed.Get("/export/properties-units", transferHandler.ExportPropertiesUnits)
	authed.Get("/export/rent-history", transferHandler.ExportRentHistory)
	authed.Get("/templates/import", transferHandler.ImportTemplate)
	authed.Get("/templates/rent-history", transferHandler.RentHistoryTemplate)

	// Portfolio statistics
	authed.Get("/dashboard/stats", statsHandler.PortfolioSummary)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
