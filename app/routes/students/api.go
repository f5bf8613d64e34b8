package students

import (
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/brunapfe/SIGA/app/database"
	"github.com/brunapfe/SIGA/app/models"
)

var validate = validator.New()

type studentRequest struct {
	Name       string  `json:"name" validate:"required"`
	StudentID  string  `json:"student_id" validate:"required"`
	Email      string  `json:"email" validate:"omitempty,email"`
	Sexo       string  `json:"sexo"`
	RendaMedia float64 `json:"renda_media" validate:"omitempty,gte=0"`
	Raca       string  `json:"raca"`
	CourseID   string  `json:"course_id" validate:"required,uuid"`
}

func (r *studentRequest) toModel() *models.Student {
	student := &models.Student{
		Name:      r.Name,
		StudentID: r.StudentID,
		CourseID:  r.CourseID,
	}
	if r.Email != "" {
		student.Email = &r.Email
	}
	if r.Sexo != "" {
		student.Sexo = &r.Sexo
	}
	if r.RendaMedia != 0 {
		student.RendaMedia = &r.RendaMedia
	}
	if r.Raca != "" {
		student.Raca = &r.Raca
	}
	return student
}

func GetStudentsAPI(c *fiber.Ctx) error {
	courseID := c.Query("course_id")

	var (
		students []*models.Student
		err      error
	)
	if courseID != "" {
		students, err = database.GetStudentsByCourse(studentsDB, courseID)
	} else {
		students, err = database.GetAllStudents(studentsDB)
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"count":    len(students),
	})
}

func GetStudentByIDAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")
	if studentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student ID is required"})
	}

	student, err := database.GetStudentByID(studentsDB, studentID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	return c.JSON(fiber.Map{"student": student})
}

// GetStudentGradesAPI lists a student's grades newest first, for the grade
// dialog on the students page.
func GetStudentGradesAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")
	if studentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student ID is required"})
	}

	if _, err := database.GetStudentByID(studentsDB, studentID); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	grades, err := database.GetGradesByStudent(studentsDB, studentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch grades"})
	}

	return c.JSON(fiber.Map{
		"grades": grades,
		"count":  len(grades),
	})
}

func CreateStudentAPI(c *fiber.Ctx) error {
	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	student := req.toModel()
	if err := database.CreateStudent(studentsDB, student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}

	return c.Status(201).JSON(fiber.Map{"student": student})
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")
	if studentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student ID is required"})
	}

	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	student := req.toModel()
	student.ID = studentID

	if err := database.UpdateStudent(studentsDB, student); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}

	return c.JSON(fiber.Map{"student": student})
}

func DeleteStudentAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")
	if studentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Student ID is required"})
	}

	if err := database.DeleteStudent(studentsDB, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete student"})
	}

	return c.JSON(fiber.Map{"success": true})
}
