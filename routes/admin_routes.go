package routes

import (
	"github.com/anjiri1684/omnilearn/handlers"
	"github.com/anjiri1684/omnilearn/middleware"
	"github.com/anjiri1684/omnilearn/websocket"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App, approvals *handlers.ApprovalHandler, feed *websocket.Hub) {
	api := app.Group("/api/v1")

	api.Get("/admin/ws", middleware.ProtectedWS(), middleware.AdminRequired(), handlers.UpgradeFeed, handlers.AdminFeed(feed))

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard-analytics", handlers.GetDashboardAnalytics)

	transactions := admin.Group("/transactions")
	transactions.Get("", handlers.ListTransactions)
	transactions.Get("/:ref", handlers.GetTransaction)
	transactions.Post("/:ref/decision", approvals.Decide)

	reports := admin.Group("/reports")
	reports.Get("/transactions", handlers.GenerateTransactionReport)

	admin.Get("/merchant", handlers.GetMerchantSettings)
	admin.Put("/merchant", handlers.UpdateMerchantSettings)

	courses := admin.Group("/courses")
	courses.Post("", handlers.AdminCreateCourse)
	courses.Put("/:courseId", handlers.AdminUpdateCourse)
	courses.Delete("/:courseId", handlers.AdminDeleteCourse)
	courses.Post("/:courseId/share", handlers.ShareCourse)
	courses.Post("/:courseId/coupons", handlers.AdminAddCoupon)

	coupons := admin.Group("/coupons")
	coupons.Get("", handlers.AdminListCoupons)
	coupons.Get("/lookup/:code", handlers.LookupCoupon)
	coupons.Put("/:couponId", handlers.AdminUpdateCoupon)
	coupons.Delete("/:couponId", handlers.AdminDeleteCoupon)
}
