package routes

import (
	"github.com/gofiber/fiber/v2"

	"turnos-backend/controllers"
	"turnos-backend/middleware"
)

func SetupDashboardRoutes(app *fiber.App) {
	dashboard := app.Group("/api/dashboard", middleware.Protected())

	dashboard.Get("/today", controllers.GetTodayDashboard)
}
