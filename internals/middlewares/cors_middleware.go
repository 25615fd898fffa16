// middlewares/cors.go

package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"safetrack_backend/internals/configs"
)

// CorsMiddleware builds the CORS middleware. Origins come from CORS_ORIGINS
// (comma separated) with a localhost fallback for dev.
func CorsMiddleware() fiber.Handler {
	origins := configs.GetEnv("CORS_ORIGINS")
	if origins == "" {
		origins = strings.Join([]string{
			"http://localhost:3000",
			"http://localhost:5173",
		}, ", ")
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}
