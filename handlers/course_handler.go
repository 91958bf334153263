package handlers

import (
	"strings"

	config "github.com/anjiri1684/omnilearn/configs"
	"github.com/anjiri1684/omnilearn/database"
	"github.com/anjiri1684/omnilearn/middleware"
	"github.com/anjiri1684/omnilearn/services"
	"github.com/gofiber/fiber/v2"
)

func ListCourses(c *fiber.Ctx) error {
	courses, err := services.ListCourses(database.DB, services.CourseFilter{
		Category: c.Query("category"),
		Level:    c.Query("level"),
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(courses)
}

func GetCourse(c *fiber.Ctx) error {
	course, err := services.GetCourse(database.DB, c.Params("courseId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(course)
}

func ListCategories(c *fiber.Ctx) error {
	categories, err := services.Categories(database.DB)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(append([]string{"All"}, categories...))
}

func ResolveShortLink(c *fiber.Ctx) error {
	courseID, found, err := services.ResolveShortLink(database.DB, c.Params("code"))
	if err != nil {
		return serviceError(c, err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Short link not found"})
	}
	return c.JSON(fiber.Map{"course_id": courseID})
}

func viewRouterConfig() services.ViewRouterConfig {
	return services.ViewRouterConfig{
		AccessSecret:    config.Config("ADMIN_ACCESS_SECRET"),
		DefaultView:     config.ConfigDefault("DEFAULT_VIEW", "home"),
		DefaultCourseID: config.ConfigDefault("DEFAULT_COURSE_ID", "hacking-bundle-1"),
	}
}

// GetInitialView turns the landing URL's query into the first view to show.
func GetInitialView(c *fiber.Ctx) error {
	resolution, err := services.ResolveInitialView(database.DB, viewRouterConfig(), services.ViewParams{
		Access:    c.Query("access"),
		CourseID:  c.Query("c"),
		ShortCode: c.Query("s"),
	}, middleware.IsAdmin(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resolution)
}

func publicBaseURL(c *fiber.Ctx) string {
	if base := config.Config("PUBLIC_BASE_URL"); base != "" {
		return strings.TrimRight(base, "/")
	}
	return c.BaseURL()
}
