package courses

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

// courseRequest is the payload for create and update.
type courseRequest struct {
	Name           string `json:"name" validate:"required"`
	Code           string `json:"code"`
	TotalSemesters int    `json:"total_semesters" validate:"omitempty,gte=1,lte=20"`
	StartDate      string `json:"start_date"` // YYYY-MM-DD
}

func (r *courseRequest) toModel() (*models.Course, error) {
	course := &models.Course{
		Name:           r.Name,
		TotalSemesters: r.TotalSemesters,
	}
	if course.TotalSemesters == 0 {
		course.TotalSemesters = 8
	}
	if r.Code != "" {
		course.Code = &r.Code
	}
	if r.StartDate != "" {
		t, err := time.Parse("2006-01-02", r.StartDate)
		if err != nil {
			return nil, err
		}
		course.StartDate = &t
	}
	return course, nil
}

func GetCoursesAPI(c *fiber.Ctx) error {
	courses, err := database.GetAllCourses(coursesDB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch courses"})
	}

	now := time.Now()
	for _, course := range courses {
		course.CurrentSemester = CurrentSemester(course.StartDate, course.TotalSemesters, now)
	}

	return c.JSON(fiber.Map{
		"courses": courses,
		"count":   len(courses),
	})
}

func GetCourseByIDAPI(c *fiber.Ctx) error {
	courseID := c.Params("id")
	if courseID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Course ID is required"})
	}

	course, err := database.GetCourseByID(coursesDB, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Course not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch course"})
	}
	course.CurrentSemester = CurrentSemester(course.StartDate, course.TotalSemesters, time.Now())

	students, err := database.GetStudentsByCourse(coursesDB, courseID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch course students"})
	}
	course.Students = students

	return c.JSON(fiber.Map{"course": course})
}

func CreateCourseAPI(c *fiber.Ctx) error {
	var req courseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	course, err := req.toModel()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid start date, expected YYYY-MM-DD"})
	}

	if err := database.CreateCourse(coursesDB, course); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create course"})
	}

	return c.Status(201).JSON(fiber.Map{"course": course})
}

func UpdateCourseAPI(c *fiber.Ctx) error {
	courseID := c.Params("id")
	if courseID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Course ID is required"})
	}

	var req courseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	course, err := req.toModel()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid start date, expected YYYY-MM-DD"})
	}
	course.ID = courseID

	if err := database.UpdateCourse(coursesDB, course); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Course not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update course"})
	}

	return c.JSON(fiber.Map{"course": course})
}

func DeleteCourseAPI(c *fiber.Ctx) error {
	courseID := c.Params("id")
	if courseID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Course ID is required"})
	}

	if err := database.DeleteCourse(coursesDB, courseID); err != nil {
		switch {
		case errors.Is(err, database.ErrCourseInUse):
			return c.Status(409).JSON(fiber.Map{"error": "Course has students assigned to it"})
		case errors.Is(err, sql.ErrNoRows):
			return c.Status(404).JSON(fiber.Map{"error": "Course not found"})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to delete course"})
		}
	}

	return c.JSON(fiber.Map{"success": true})
}
