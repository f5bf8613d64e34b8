package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

var studentsDB *sql.DB

func SetupStudentsRoutes(app *fiber.App, db *sql.DB, authMiddleware fiber.Handler) {
	studentsDB = db

	api := app.Group("/api/students")
	api.Use(authMiddleware)
	api.Get("/", GetStudentsAPI)            // Get all students (?course_id=uuid)
	api.Get("/:id", GetStudentByIDAPI)      // Get single student by ID
	api.Get("/:id/grades", GetStudentGradesAPI) // Get a student's grades, newest first
	api.Post("/", CreateStudentAPI)         // Create new student
	api.Put("/:id", UpdateStudentAPI)       // Update existing student
	api.Delete("/:id", DeleteStudentAPI)    // Delete student
}
