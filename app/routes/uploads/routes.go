package uploads

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/brunapfe/SIGA/app/importer"
)

var (
	uploadsDB *sql.DB
	store     *importer.Store
)

func SetupUploadsRoutes(app *fiber.App, db *sql.DB, sessions *importer.Store, authMiddleware fiber.Handler) {
	uploadsDB = db
	store = sessions

	api := app.Group("/api/uploads")
	api.Use(authMiddleware)
	api.Post("/", UploadAPI)                  // Upload and detect a spreadsheet
	api.Get("/:id", GetUploadAPI)             // Inspect a pending import session
	api.Post("/:id/force-type", ForceTypeAPI) // Manual type override
	api.Post("/:id/commit", CommitAPI)        // Normalize, reconcile and write
	api.Delete("/:id", CancelUploadAPI)       // Cancel the session
}
