package routes

import (
	"github.com/anjiri1684/omnilearn/handlers"
	"github.com/gofiber/fiber/v2"
)

func AdvisorRoutes(app *fiber.App, h *handlers.AdvisorHandler) {
	api := app.Group("/api/v1")

	advisor := api.Group("/advisor")
	advisor.Post("/chat", h.Chat)
	advisor.Post("/courses/:courseId/tutor", h.Tutor)
}
