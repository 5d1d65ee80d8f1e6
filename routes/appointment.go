package routes

import (
	"github.com/gofiber/fiber/v2"

	"turnos-backend/controllers"
	"turnos-backend/middleware"
)

func SetupAppointmentRoutes(app *fiber.App) {
	appointments := app.Group("/api/appointments", middleware.Protected())

	appointments.Post("/", controllers.CreateAppointment)
	appointments.Get("/", controllers.GetAppointments)
	appointments.Get("/:id", controllers.GetAppointment)
	appointments.Put("/:id", controllers.UpdateAppointment)
	appointments.Post("/:id/cancel", controllers.CancelAppointment)
	appointments.Post("/:id/complete", controllers.CompleteAppointment)
	appointments.Delete("/:id", controllers.DeleteAppointment)
}
