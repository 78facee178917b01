package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/portfolio-api/internal/config"
	"github.com/noah-isme/portfolio-api/internal/handler"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	// ContactHandler is nil when the contact store is disabled.
	ContactHandler *handler.ContactHandler
	EmailHandler   *handler.EmailHandler
	MetricsHandler fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))
	if deps.MetricsHandler != nil {
		app.Get("/metrics", deps.MetricsHandler)
	}

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.ContactHandler != nil {
		deps.ContactHandler.Register(api.Group("/contacts"))
	}

	if deps.EmailHandler != nil {
		deps.EmailHandler.Register(api.Group("/email"))
	}
}
