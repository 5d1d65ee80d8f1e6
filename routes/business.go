package routes

import (
	"github.com/gofiber/fiber/v2"

	"turnos-backend/controllers"
	"turnos-backend/middleware"
)

func SetupBusinessRoutes(app *fiber.App) {
	business := app.Group("/api/business", middleware.Protected())

	business.Put("/configuration", controllers.SaveConfiguration)
	business.Get("/configuration", controllers.GetConfiguration)
	business.Get("/setup-status", controllers.GetSetupStatus)
	business.Post("/logo", controllers.UploadLogo)
}
