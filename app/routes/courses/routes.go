package courses

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

var coursesDB *sql.DB

func SetupCoursesRoutes(app *fiber.App, db *sql.DB, authMiddleware fiber.Handler) {
	coursesDB = db

	api := app.Group("/api/courses")
	api.Use(authMiddleware)
	api.Get("/", GetCoursesAPI)           // Get all courses
	api.Get("/:id", GetCourseByIDAPI)     // Get course detail with subjects and students
	api.Post("/", CreateCourseAPI)        // Create new course
	api.Put("/:id", UpdateCourseAPI)      // Update existing course
	api.Delete("/:id", DeleteCourseAPI)   // Delete course (blocked while students reference it)
}
