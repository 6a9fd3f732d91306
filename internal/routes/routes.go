package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/davez1000/dbo-stats/internal/controller"
)

// Register attaches all HTTP routes to the Fiber app.
func Register(app *fiber.App, statsController controller.StatsController) {
	app.Get("/dbo_stats/roles", statsController.GetRoles)
	app.Get("/dbo_stats/content/:type/:date?/:role?/:limit?/:sort?", statsController.GetContentStats)
	app.Get("/dbo_stats/:type/:date?/:role?/:limit?/:sort?", statsController.GetStats)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
