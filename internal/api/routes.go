package api

import (
	"github.com/bilgisen/ytfeed/internal/config"
	"github.com/bilgisen/ytfeed/internal/media"
	"github.com/bilgisen/ytfeed/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, handlers *Handlers, cfg *config.Config) {
	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	api.Get("/health", handlers.HealthCheck)

	// Method checking happens in the handler so that every method gets the CORS headers.
	api.All("/youtube", handlers.GetVideos)

	api.Get("/appearances",
		middleware.ValidateQueryParams(func() *media.Query { return &media.Query{} }),
		handlers.GetAppearances,
	)

	if cfg.AdminAPIKey != "" {
		admin := api.Group("/admin", middleware.AdminOnly(cfg.AdminAPIKey))
		admin.Delete("/cache", handlers.ClearCache)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
