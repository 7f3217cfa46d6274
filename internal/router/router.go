package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/examlens/examlens-api/internal/config"
	"github.com/examlens/examlens-api/internal/handler"
	"github.com/examlens/examlens-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	EvaluationHandler *handler.EvaluationHandler
	JWTMiddleware     fiber.Handler
	RateLimiter       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	noop := func(c *fiber.Ctx) error { return c.Next() }

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = noop
	}

	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = noop
	}

	if deps.EvaluationHandler != nil {
		evaluations := api.Group("/evaluations", jwtMiddleware, rateLimiter)
		deps.EvaluationHandler.Register(evaluations)
	}
}
