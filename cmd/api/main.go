package main

import (
	"fmt"
	"log"
	"time"

	config "github.com/anjiri1684/omnilearn/configs"
	"github.com/anjiri1684/omnilearn/database"
	"github.com/anjiri1684/omnilearn/handlers"
	"github.com/anjiri1684/omnilearn/jobs"
	"github.com/anjiri1684/omnilearn/models"
	"github.com/anjiri1684/omnilearn/notifications"
	"github.com/anjiri1684/omnilearn/routes"
	"github.com/anjiri1684/omnilearn/services"
	"github.com/anjiri1684/omnilearn/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	database.SeedCourses()
	notifications.InitEmailService()

	feed := websocket.Feed
	go feed.Run()

	c := cron.New()
	c.AddFunc("@hourly", jobs.CleanupSessions)
	c.AddFunc("0 9 * * *", jobs.SendApprovalDigest)
	go c.Start()
	log.Println("✅ Cron jobs scheduled successfully.")

	checkout := services.NewCheckoutService(database.DB, services.CheckoutDelays{
		Processing:   config.ConfigDuration("CHECKOUT_PROCESSING_DELAY", services.DefaultCheckoutDelays().Processing),
		Verification: config.ConfigDuration("CHECKOUT_VERIFICATION_DELAY", services.DefaultCheckoutDelays().Verification),
	}, func(co models.Checkout, txns []models.Transaction) {
		feed.Publish(websocket.EventTransactionsPending, txns)

		subject, body, err := notifications.PaymentPendingEmail(co, txns)
		if err != nil {
			log.Printf("🔥 %v", err)
			return
		}
		go notifications.SendEmail(co.CustomerName, co.CustomerEmail, subject, body)
	})

	advisor := services.NewAdvisor(services.NewGeminiClient(
		config.Config("GEMINI_BASE_URL"),
		config.Config("GEMINI_API_KEY"),
		config.ConfigDefault("GEMINI_MODEL", services.DefaultGeminiModel),
	))
	receipts := services.NewReceiptIssuer(database.DB, config.Config("CLOUDINARY_URL"))

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "OmniLearn Storefront",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  config.ConfigDefault("CORS_ORIGINS", "*"),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Session-ID, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization, X-Session-ID",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Kolkata",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to OmniLearn API",
		})
	})

	routes.PublicRoutes(app)
	routes.AuthRoutes(app)
	routes.CartRoutes(app)
	routes.CheckoutRoutes(app, handlers.NewCheckoutHandler(checkout))
	routes.AdvisorRoutes(app, handlers.NewAdvisorHandler(advisor))
	routes.AdminRoutes(app, handlers.NewApprovalHandler(receipts, feed), feed)
	routes.UploadRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.ConfigInt("PORT", 8080)
	log.Printf("✅ Server is running on port %d", port)
	if err := app.Listen(fmt.Sprintf(":%d", port)); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
