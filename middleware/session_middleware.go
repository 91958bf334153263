package middleware

import (
	"log"
	"time"

	config "github.com/anjiri1684/omnilearn/configs"
	"github.com/anjiri1684/omnilearn/database"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/anjiri1684/omnilearn/services"
	"github.com/gofiber/fiber/v2"
)

const (
	SessionCookie = "omnilearn_session"
	SessionHeader = "X-Session-ID"
)

// Session loads the buyer session named by the cookie or header, creating one
// when absent, and echoes its id back on both.
func Session() fiber.Handler {
	ttl := config.ConfigDuration("SESSION_TTL", 720*time.Hour)
	return func(c *fiber.Ctx) error {
		id := c.Cookies(SessionCookie)
		if id == "" {
			id = c.Get(SessionHeader)
		}

		session, err := services.LoadSession(database.DB, id)
		if err != nil {
			log.Printf("🔥 Failed to load session: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load session"})
		}

		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    session.ID,
			Path:     "/",
			Expires:  time.Now().Add(ttl),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Set(SessionHeader, session.ID)
		c.Locals("session", session)
		return c.Next()
	}
}

func CurrentSession(c *fiber.Ctx) *models.Session {
	session, _ := c.Locals("session").(*models.Session)
	return session
}
