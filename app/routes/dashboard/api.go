package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brunapfe/SIGA/app/database"
	"github.com/brunapfe/SIGA/app/routes/auth"
)

// GetDashboardAPI returns grade aggregates for the professor's subjects.
// An optional subject_id query parameter restricts the aggregation to a
// single subject.
func GetDashboardAPI(c *fiber.Ctx) error {
	subjectID := c.Query("subject_id")

	stats, err := database.GetDashboardStats(dashboardDB, auth.ProfessorID(c), subjectID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   "Failed to fetch dashboard statistics",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
