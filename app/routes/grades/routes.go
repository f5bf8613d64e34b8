package grades

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

var gradesDB *sql.DB

func SetupGradesRoutes(app *fiber.App, db *sql.DB, authMiddleware fiber.Handler) {
	gradesDB = db

	api := app.Group("/api/grades")
	api.Use(authMiddleware)
	api.Post("/", CreateGradeAPI)      // Record a new grade
	api.Put("/:id", UpdateGradeAPI)    // Update existing grade
	api.Delete("/:id", DeleteGradeAPI) // Delete grade
}
