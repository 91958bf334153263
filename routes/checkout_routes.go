package routes

import (
	"github.com/anjiri1684/omnilearn/handlers"
	"github.com/anjiri1684/omnilearn/middleware"
	"github.com/gofiber/fiber/v2"
)

func CheckoutRoutes(app *fiber.App, h *handlers.CheckoutHandler) {
	api := app.Group("/api/v1")

	checkout := api.Group("/checkout", middleware.Session())
	checkout.Get("/steps", h.Steps)
	checkout.Post("", h.Start)
	checkout.Get("/:checkoutId", h.Get)
	checkout.Post("/:checkoutId/coupon", h.ApplyCoupon)
	checkout.Delete("/:checkoutId/coupon", h.RemoveCoupon)
	checkout.Post("/:checkoutId/details", h.SubmitDetails)
	checkout.Post("/:checkoutId/back", h.Back)
	checkout.Get("/:checkoutId/payment-options", h.PaymentOptions)
	checkout.Post("/:checkoutId/pay", h.Pay)
	checkout.Post("/:checkoutId/cancel", h.Cancel)
}
