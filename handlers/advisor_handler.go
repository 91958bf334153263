package handlers

import (
	"github.com/anjiri1684/omnilearn/database"
	"github.com/anjiri1684/omnilearn/services"
	"github.com/gofiber/fiber/v2"
)

type AdvisorHandler struct {
	Advisor *services.Advisor
}

func NewAdvisorHandler(advisor *services.Advisor) *AdvisorHandler {
	return &AdvisorHandler{Advisor: advisor}
}

type ChatRequest struct {
	Message string              `json:"message" validate:"required,max=2000"`
	History []services.ChatTurn `json:"history" validate:"max=50,dive"`
}

func parseChat(c *fiber.Ctx) (ChatRequest, error) {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return req, nil
}

func (h *AdvisorHandler) Chat(c *fiber.Ctx) error {
	req, err := parseChat(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courses, err := services.ListCourses(database.DB, services.CourseFilter{})
	if err != nil {
		return serviceError(c, err)
	}
	reply := h.Advisor.Advise(c.UserContext(), courses, req.History, req.Message)
	return c.JSON(fiber.Map{"reply": reply})
}

func (h *AdvisorHandler) Tutor(c *fiber.Ctx) error {
	req, err := parseChat(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course, err := services.GetCourse(database.DB, c.Params("courseId"))
	if err != nil {
		return serviceError(c, err)
	}
	reply := h.Advisor.Tutor(c.UserContext(), *course, req.History, req.Message)
	return c.JSON(fiber.Map{"reply": reply})
}
