package handlers

import (
	"log"

	"github.com/anjiri1684/omnilearn/middleware"
	hub "github.com/anjiri1684/omnilearn/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UpgradeFeed rejects plain HTTP requests to the websocket endpoint.
func UpgradeFeed(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("admin_id", middleware.AdminID(c))
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func AdminFeed(feed *hub.Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		adminID, _ := conn.Locals("admin_id").(string)
		client := &hub.Client{ID: uuid.New(), AdminID: adminID, Conn: conn}

		feed.Register <- client
		defer func() {
			feed.Unregister <- client
			conn.Close()
		}()

		// The feed is push only; reads just detect disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("Admin feed read error: %v", err)
				}
				return
			}
		}
	})
}
