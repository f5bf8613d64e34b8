package subjects

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

var subjectsDB *sql.DB

func SetupSubjectsRoutes(app *fiber.App, db *sql.DB, authMiddleware fiber.Handler) {
	subjectsDB = db

	api := app.Group("/api/subjects")
	api.Use(authMiddleware)
	api.Get("/", GetSubjectsAPI)         // Get the professor's subjects
	api.Post("/", CreateSubjectAPI)      // Create new subject
	api.Put("/:id", UpdateSubjectAPI)    // Update existing subject
	api.Delete("/:id", DeleteSubjectAPI) // Delete subject
}
