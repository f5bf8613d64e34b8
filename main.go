package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/brunapfe/SIGA/app/config"
	"github.com/brunapfe/SIGA/app/database"
	"github.com/brunapfe/SIGA/app/importer"
	"github.com/brunapfe/SIGA/app/routes/auth"
	"github.com/brunapfe/SIGA/app/routes/courses"
	"github.com/brunapfe/SIGA/app/routes/dashboard"
	"github.com/brunapfe/SIGA/app/routes/grades"
	"github.com/brunapfe/SIGA/app/routes/students"
	"github.com/brunapfe/SIGA/app/routes/subjects"
	"github.com/brunapfe/SIGA/app/routes/uploads"
)

// errorHandler turns unhandled errors into a JSON body.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	cfg := config.Load()

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Import sessions live in memory; the janitor sweeps expired ones
	sessions := importer.NewStore()
	sessions.StartJanitor()

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowOriginsFunc: func(origin string) bool { return true },
	}))

	// Setup auth routes
	auth.SetupAuthRoutes(app, db, cfg.JWTSecret)

	// Setup courses routes
	courses.SetupCoursesRoutes(app, db, auth.Middleware)

	// Setup subjects routes
	subjects.SetupSubjectsRoutes(app, db, auth.Middleware)

	// Setup students routes
	students.SetupStudentsRoutes(app, db, auth.Middleware)

	// Setup grades routes
	grades.SetupGradesRoutes(app, db, auth.Middleware)

	// Setup dashboard routes
	dashboard.SetupDashboardRoutes(app, db, auth.Middleware)

	// Setup upload routes
	uploads.SetupUploadsRoutes(app, db, sessions, auth.Middleware)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route not found")
	})

	// Shut down cleanly on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Println("Shutdown error:", err)
		}
	}()

	log.Println("Server starting on :" + cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
