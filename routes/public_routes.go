package routes

import (
	"github.com/anjiri1684/omnilearn/handlers"
	"github.com/anjiri1684/omnilearn/middleware"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/view", middleware.OptionalAdmin(), handlers.GetInitialView)
	api.Get("/s/:code", handlers.ResolveShortLink)

	courses := api.Group("/courses")
	courses.Get("", handlers.ListCourses)
	courses.Get("/categories", handlers.ListCategories)
	courses.Get("/:courseId", handlers.GetCourse)
}
