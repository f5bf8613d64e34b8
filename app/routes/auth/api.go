package auth

import (
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/brunapfe/SIGA/app/database"
	"github.com/brunapfe/SIGA/app/models"
)

var validate = validator.New()

func RegisterAPI(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := database.GetProfessorByEmail(authDB, req.Email); err == nil {
		return c.Status(409).JSON(fiber.Map{"error": "Email already registered"})
	}

	professor := &models.Professor{Name: req.Name, Email: req.Email, Password: req.Password}
	if err := database.CreateProfessor(authDB, professor); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create professor"})
	}

	return c.Status(201).JSON(fiber.Map{
		"id":    professor.ID,
		"name":  professor.Name,
		"email": professor.Email,
	})
}

func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	professor, err := database.GetProfessorByEmail(authDB, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid email or password"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Login failed"})
	}

	if !CheckPasswordHash(req.Password, professor.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	token, err := GenerateJWT(professor.ID, professor.Email, professor.Name)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"token": token,
		"professor": fiber.Map{
			"id":    professor.ID,
			"name":  professor.Name,
			"email": professor.Email,
		},
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"success": true})
}

func MeAPI(c *fiber.Ctx) error {
	professor, err := database.GetProfessorByID(authDB, ProfessorID(c))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Professor not found"})
	}

	return c.JSON(fiber.Map{
		"id":         professor.ID,
		"name":       professor.Name,
		"email":      professor.Email,
		"created_at": professor.CreatedAt,
	})
}

func ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	professor, err := database.GetProfessorByID(authDB, ProfessorID(c))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Professor not found"})
	}

	if !CheckPasswordHash(req.CurrentPassword, professor.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	if err := database.UpdateProfessorPassword(authDB, professor.ID, req.NewPassword); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update password"})
	}

	return c.JSON(fiber.Map{"success": true})
}
