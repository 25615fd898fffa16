// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"safetrack_backend/internals/features/users/auth/controller"
	rateLimiter "safetrack_backend/internals/middlewares"
	authMiddleware "safetrack_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	baseAuth := app.Group("/api/auth")

	// 🔓 public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)

	// protected
	baseAuth.Post("/logout", authMiddleware.AuthMiddleware(db), authController.Logout)
}
