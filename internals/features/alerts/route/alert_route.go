// file: internals/features/alerts/route/alert_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"safetrack_backend/internals/features/alerts/controller"
	authMiddleware "safetrack_backend/internals/middlewares/auth"
)

func AlertRoutes(app *fiber.App, db *gorm.DB) {
	alertController := controller.NewAlertController(db)

	alerts := app.Group("/api/alerts", authMiddleware.AuthMiddleware(db))

	alerts.Post("/", alertController.CreateAlert)
	alerts.Get("/", alertController.ListAlerts)

	// admin triage
	alerts.Get("/active", authMiddleware.OnlyAdmin(), alertController.ListActiveAlerts)
	alerts.Put("/:id", authMiddleware.OnlyAdmin(), alertController.UpdateAlertStatus)
}
