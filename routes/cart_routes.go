package routes

import (
	"github.com/anjiri1684/omnilearn/handlers"
	"github.com/anjiri1684/omnilearn/middleware"
	"github.com/gofiber/fiber/v2"
)

func CartRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	cart := api.Group("/cart", middleware.Session())
	cart.Get("", handlers.GetCart)
	cart.Post("/items", handlers.AddToCart)
	cart.Delete("/items/:cartId", handlers.RemoveFromCart)
	cart.Delete("", handlers.ClearCart)
	cart.Post("/buy-now", handlers.BuyNow)
}
