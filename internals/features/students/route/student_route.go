// file: internals/features/students/route/student_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"safetrack_backend/internals/features/students/controller"
	authMiddleware "safetrack_backend/internals/middlewares/auth"
)

func StudentRoutes(app *fiber.App, db *gorm.DB) {
	studentController := controller.NewStudentController(db)

	students := app.Group("/api/students", authMiddleware.AuthMiddleware(db))

	students.Get("/me", studentController.Me)
	students.Put("/me", studentController.UpdateMe)

	// admin roster
	students.Get("/", authMiddleware.OnlyAdmin(), studentController.ListStudents)
}
