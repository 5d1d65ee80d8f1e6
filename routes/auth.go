package routes

import (
	"github.com/gofiber/fiber/v2"

	"turnos-backend/controllers"
	"turnos-backend/middleware"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/register", controllers.Register)
	auth.Post("/verify-email", controllers.VerifyEmail)
	auth.Post("/login", controllers.Login)

	auth.Post("/logout", middleware.Protected(), controllers.Logout)
	auth.Get("/me", middleware.Protected(), controllers.Me)
}
