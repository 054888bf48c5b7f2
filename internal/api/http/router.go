package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-board/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Home     *handlers.HomeHandler
	Health   *handlers.HealthHandler
	Users    *handlers.UsersHandler
	Projects *handlers.ProjectsHandler
	Tasks    *handlers.TasksHandler
	Stats    *handlers.StatsHandler
}

// RegisterRoutes wires HTTP routes. Anything else falls through to a not-found error.
// GET routes are added with Add so they do not also answer HEAD.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Add(fiber.MethodGet, "/health/live", cfg.Health.Live)
	app.Add(fiber.MethodGet, "/health/ready", cfg.Health.Ready)
	app.Add(fiber.MethodGet, "/metrics", cfg.Health.Metrics)

	app.Add(fiber.MethodGet, "/", cfg.Home.Welcome)

	app.Add(fiber.MethodGet, "/users", cfg.Users.List)
	app.Post("/users", cfg.Users.Create)

	app.Add(fiber.MethodGet, "/projects", cfg.Projects.List)
	app.Post("/projects", cfg.Projects.Create)

	app.Add(fiber.MethodGet, "/tasks", cfg.Tasks.List)

	app.Add(fiber.MethodGet, "/stats", cfg.Stats.Get)
}

// NewApp builds a fiber application with the full middleware chain and routes.
func NewApp(appName string, mw MiddlewareConfig, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		CaseSensitive:         true,
		StrictRouting:         true,
	})
	RegisterMiddlewares(app, mw)
	RegisterRoutes(app, routes)
	return app
}
