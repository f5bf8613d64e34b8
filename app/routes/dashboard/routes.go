package dashboard

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
)

var dashboardDB *sql.DB

func SetupDashboardRoutes(app *fiber.App, db *sql.DB, authMiddleware fiber.Handler) {
	dashboardDB = db

	api := app.Group("/api/dashboard")
	api.Use(authMiddleware)
	api.Get("/", GetDashboardAPI) // Aggregate stats (?subject_id=uuid)
}
