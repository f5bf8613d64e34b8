package subjects

import (
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/brunapfe/SIGA/app/database"
	"github.com/brunapfe/SIGA/app/models"
	"github.com/brunapfe/SIGA/app/routes/auth"
)

var validate = validator.New()

type subjectRequest struct {
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code" validate:"required"`
	Year     int    `json:"year" validate:"required,gte=2000"`
	Semester int    `json:"semester" validate:"required,gte=1,lte=2"`
	CourseID string `json:"course_id" validate:"omitempty,uuid"`
}

func (r *subjectRequest) toModel(professorID string) *models.Subject {
	subject := &models.Subject{
		Name:        r.Name,
		Code:        r.Code,
		Year:        r.Year,
		Semester:    r.Semester,
		ProfessorID: professorID,
	}
	if r.CourseID != "" {
		subject.CourseID = &r.CourseID
	}
	return subject
}

func GetSubjectsAPI(c *fiber.Ctx) error {
	subjects, err := database.GetSubjectsByProfessor(subjectsDB, auth.ProfessorID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch subjects"})
	}

	return c.JSON(fiber.Map{
		"subjects": subjects,
		"count":    len(subjects),
	})
}

func CreateSubjectAPI(c *fiber.Ctx) error {
	var req subjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	subject := req.toModel(auth.ProfessorID(c))
	if err := database.CreateSubject(subjectsDB, subject); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create subject"})
	}

	return c.Status(201).JSON(fiber.Map{"subject": subject})
}

func UpdateSubjectAPI(c *fiber.Ctx) error {
	subjectID := c.Params("id")
	if subjectID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Subject ID is required"})
	}

	var req subjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	subject := req.toModel(auth.ProfessorID(c))
	subject.ID = subjectID

	if err := database.UpdateSubject(subjectsDB, subject); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Subject not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update subject"})
	}

	return c.JSON(fiber.Map{"subject": subject})
}

func DeleteSubjectAPI(c *fiber.Ctx) error {
	subjectID := c.Params("id")
	if subjectID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Subject ID is required"})
	}

	if err := database.DeleteSubject(subjectsDB, subjectID, auth.ProfessorID(c)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Subject not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete subject"})
	}

	return c.JSON(fiber.Map{"success": true})
}
