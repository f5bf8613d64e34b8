package auth

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var authDB *sql.DB

// SetupAuthRoutes registers the auth endpoints and injects the database
// handle and signing secret used by the whole package.
func SetupAuthRoutes(app *fiber.App, db *sql.DB, secret string) {
	authDB = db
	jwtSecret = []byte(secret)

	auth := app.Group("/auth")

	// Public routes
	auth.Post("/register", RegisterAPI)
	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)

	// Protected routes
	auth.Use(Middleware)
	auth.Get("/me", MeAPI)
	auth.Post("/change-password", ChangePasswordAPI)
}

// Middleware validates the JWT and sets the professor context.
func Middleware(c *fiber.Ctx) error {
	// First try cookie, then Authorization header
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}

	c.Locals("professor_id", claims.ProfessorID)
	c.Locals("professor_email", claims.Email)
	c.Locals("professor_name", claims.Name)
	return c.Next()
}

// ProfessorID returns the authenticated professor's id from the context.
func ProfessorID(c *fiber.Ctx) string {
	id, _ := c.Locals("professor_id").(string)
	return id
}
