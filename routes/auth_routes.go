package routes

import (
	"github.com/anjiri1684/omnilearn/handlers"
	"github.com/anjiri1684/omnilearn/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/admin/login", handlers.AdminLogin)
	auth.Get("/admin/session", middleware.OptionalAdmin(), handlers.AdminSession)
}
