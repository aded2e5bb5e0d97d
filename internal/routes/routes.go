package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/arnold/visiongoals/internal/handlers"
	"github.com/arnold/visiongoals/internal/middleware"
)

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(h *handlers.Handler, log *zap.Logger, corsOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "visiongoals",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	Setup(app, h)
	return app
}

func Setup(app *fiber.App, h *handlers.Handler) {
	app.Get("/healthz", handlers.Health)

	api := app.Group("/api")
	api.Get("/categories", handlers.GetCategories)

	goals := api.Group("/goals")
	goals.Get("/", h.GetGoals)
	goals.Post("/", h.CreateGoal)
	goals.Get("/:id", h.GetGoal)
	goals.Put("/:id", h.UpdateGoal)
	goals.Put("/:id/progress", h.SetProgress)
	goals.Delete("/:id", h.DeleteGoal)

	api.Get("/export", h.ExportGoals)

	// Cloud mirror
	cloud := api.Group("/remote")
	cloud.Get("/config", h.GetRemoteConfig)
	cloud.Put("/config", h.SaveRemoteConfig)
	cloud.Delete("/config", h.DeleteRemoteConfig)
	cloud.Post("/push", h.PushToRemote)
	cloud.Post("/pull", h.PullFromRemote)
	cloud.Delete("/goals/:id", h.DeleteRemoteGoal)
}
