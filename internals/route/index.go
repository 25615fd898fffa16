// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alertRoute "safetrack_backend/internals/features/alerts/route"
	studentRoute "safetrack_backend/internals/features/students/route"
	authRoute "safetrack_backend/internals/features/users/auth/route"
	rateLimiter "safetrack_backend/internals/middlewares"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	app.Use(rateLimiter.GlobalRateLimiter())

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	log.Println("[INFO] Setting up StudentRoutes...")
	studentRoute.StudentRoutes(app, db)

	log.Println("[INFO] Setting up AlertRoutes...")
	alertRoute.AlertRoutes(app, db)
}
