package handlers

import (
	"github.com/anjiri1684/omnilearn/database"
	"github.com/anjiri1684/omnilearn/middleware"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/anjiri1684/omnilearn/services"
	"github.com/gofiber/fiber/v2"
)

type CartCourseRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

type CartResponse struct {
	SessionID string              `json:"session_id"`
	Items     []models.CartItem   `json:"items"`
	Totals    services.CartTotals `json:"totals"`
}

func cartResponse(session *models.Session, items []models.CartItem) CartResponse {
	if items == nil {
		items = []models.CartItem{}
	}
	return CartResponse{SessionID: session.ID, Items: items, Totals: services.Totals(items, "")}
}

func GetCart(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	items, err := session.Items()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(cartResponse(session, items))
}

func AddToCart(c *fiber.Ctx) error {
	var req CartCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session := middleware.CurrentSession(c)
	items, err := services.AddToCart(database.DB, session, req.CourseID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cartResponse(session, items))
}

func RemoveFromCart(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	items, err := services.RemoveFromCart(database.DB, session, c.Params("cartId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(cartResponse(session, items))
}

func ClearCart(c *fiber.Ctx) error {
	session := middleware.CurrentSession(c)
	if err := services.ClearCart(database.DB, session); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(cartResponse(session, nil))
}

func BuyNow(c *fiber.Ctx) error {
	var req CartCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session := middleware.CurrentSession(c)
	items, err := services.BuyNow(database.DB, session, req.CourseID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(cartResponse(session, items))
}
