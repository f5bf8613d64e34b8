package grades

import (
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/brunapfe/SIGA/app/database"
	"github.com/brunapfe/SIGA/app/models"
)

var validate = validator.New()

type gradeRequest struct {
	StudentID      string  `json:"student_id" validate:"required,uuid"`
	SubjectID      string  `json:"subject_id" validate:"required,uuid"`
	AssessmentType string  `json:"assessment_type" validate:"required"`
	AssessmentName string  `json:"assessment_name" validate:"required"`
	Grade          float64 `json:"grade" validate:"gte=0"`
	MaxGrade       float64 `json:"max_grade" validate:"omitempty,gte=0"`
	DateAssigned   string  `json:"date_assigned"` // YYYY-MM-DD
}

func (r *gradeRequest) toModel() (*models.Grade, error) {
	grade := &models.Grade{
		StudentID:      r.StudentID,
		SubjectID:      r.SubjectID,
		AssessmentType: r.AssessmentType,
		AssessmentName: r.AssessmentName,
		Grade:          r.Grade,
		MaxGrade:       r.MaxGrade,
	}
	if grade.MaxGrade == 0 {
		grade.MaxGrade = 10
	}
	if r.DateAssigned != "" {
		t, err := time.Parse("2006-01-02", r.DateAssigned)
		if err != nil {
			return nil, err
		}
		grade.DateAssigned = &t
	}
	return grade, nil
}

func CreateGradeAPI(c *fiber.Ctx) error {
	var req gradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	grade, err := req.toModel()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	if err := database.CreateGrade(gradesDB, grade); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record grade"})
	}

	return c.Status(201).JSON(fiber.Map{"grade": grade})
}

func UpdateGradeAPI(c *fiber.Ctx) error {
	gradeID := c.Params("id")
	if gradeID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Grade ID is required"})
	}

	var req gradeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	grade, err := req.toModel()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}
	grade.ID = gradeID

	if err := database.UpdateGrade(gradesDB, grade); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Grade not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update grade"})
	}

	return c.JSON(fiber.Map{"grade": grade})
}

func DeleteGradeAPI(c *fiber.Ctx) error {
	gradeID := c.Params("id")
	if gradeID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Grade ID is required"})
	}

	if err := database.DeleteGrade(gradesDB, gradeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Grade not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete grade"})
	}

	return c.JSON(fiber.Map{"success": true})
}
