package uploads

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/brunapfe/SIGA/app/database"
	"github.com/brunapfe/SIGA/app/importer"
	"github.com/brunapfe/SIGA/app/models"
	"github.com/brunapfe/SIGA/app/routes/auth"
)

// previewRows is how many parsed rows are echoed back after upload.
const previewRows = 5

var acceptedExtensions = map[string]bool{
	".csv":  true,
	".xls":  true,
	".xlsx": true,
}

// UploadAPI receives a spreadsheet, parses it and runs type detection. The
// returned session id drives the rest of the import flow.
func UploadAPI(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "A file is required"})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !acceptedExtensions[ext] {
		return c.Status(400).JSON(fiber.Map{"error": "Unsupported file type, expected .csv, .xls or .xlsx"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Could not read the uploaded file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Could not read the uploaded file"})
	}

	sheet, err := importer.Parse(fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, importer.ErrEmptyFile) {
			return c.Status(422).JSON(fiber.Map{"error": "The file is empty or has no data rows"})
		}
		return c.Status(422).JSON(fiber.Map{"error": "Could not process the file, check its format"})
	}

	detection := importer.Detect(sheet)

	session := importer.NewSession(auth.ProfessorID(c))
	if err := session.LoadFile(sheet, detection); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to start import session"})
	}
	store.Put(session)

	state, dataType := session.Snapshot()
	return c.Status(201).JSON(fiber.Map{
		"session_id": session.ID,
		"state":      state,
		"type":       dataType,
		"columns":    detection.Columns,
		"details":    detection.Details,
		"total_rows": len(sheet.Rows),
		"preview":    preview(sheet),
	})
}

func GetUploadAPI(c *fiber.Ctx) error {
	session, ok := sessionForProfessor(c)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "Import session not found"})
	}

	state, dataType := session.Snapshot()
	return c.JSON(fiber.Map{
		"session_id": session.ID,
		"state":      state,
		"type":       dataType,
		"columns":    session.Detection.Columns,
		"details":    session.Detection.Details,
	})
}

// ForceTypeAPI lets the user override an unrecognized classification.
func ForceTypeAPI(c *fiber.Ctx) error {
	session, ok := sessionForProfessor(c)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "Import session not found"})
	}

	type forceTypeRequest struct {
		Type string `json:"type"`
	}
	var req forceTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	dataType := importer.DataType(req.Type)
	if err := session.ForceType(dataType); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": "Type must be 'students' or 'grades' and the session must have a loaded file"})
	}

	state, dataType := session.Snapshot()
	return c.JSON(fiber.Map{
		"session_id": session.ID,
		"state":      state,
		"type":       dataType,
	})
}

// CommitAPI normalizes the loaded sheet, reconciles it against the current
// tables and issues the writes. Prior batches are not rolled back when a
// later phase fails; the backend error is surfaced as-is.
func CommitAPI(c *fiber.Ctx) error {
	session, ok := sessionForProfessor(c)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "Import session not found"})
	}

	if err := session.BeginCommit(); err != nil {
		return c.Status(409).JSON(fiber.Map{"error": "Import session is not ready to commit"})
	}

	var (
		summary *models.ImportSummary
		err     error
	)
	_, dataType := session.Snapshot()
	switch dataType {
	case importer.TypeStudents:
		summary, err = commitStudents(session)
	case importer.TypeGrades:
		summary, err = commitGrades(session)
	default:
		session.FailCommit()
		return c.Status(422).JSON(fiber.Map{"error": "Data type was not recognized, force a type first"})
	}

	if err != nil {
		session.FailCommit()
		if errors.Is(err, importer.ErrNoValidRecords) {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		response := fiber.Map{"error": err.Error()}
		if summary != nil {
			response["partial"] = summary
		}
		return c.Status(500).JSON(response)
	}

	session.FinishCommit()
	store.Delete(session.ID)

	return c.JSON(fiber.Map{
		"success": true,
		"summary": summary,
	})
}

func CancelUploadAPI(c *fiber.Ctx) error {
	session, ok := sessionForProfessor(c)
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "Import session not found"})
	}

	if err := session.Cancel(); err != nil {
		return c.Status(409).JSON(fiber.Map{"error": "A commit is in progress, the session cannot be cancelled"})
	}
	store.Delete(session.ID)
	return c.JSON(fiber.Map{"success": true})
}

func commitStudents(session *importer.Session) (*models.ImportSummary, error) {
	records, dropped, err := importer.NormalizeStudents(session.Sheet)
	if err != nil {
		return nil, err
	}

	refs, err := importer.LoadStudentRefs(uploadsDB, records)
	if err != nil {
		return nil, err
	}

	// Courses named in the sheet but missing from the database are created
	// up front so the following FK resolution can succeed.
	missing := importer.MissingCourses(records, refs.Courses)
	if len(missing) > 0 {
		created, err := database.CreateCoursesByName(uploadsDB, missing)
		if err != nil {
			return nil, fmt.Errorf("creating courses from import: %w", err)
		}
		for key, id := range created {
			refs.Courses[key] = id
		}
	}

	plan := importer.PlanStudents(records, refs)
	summary, err := importer.ApplyStudentPlan(uploadsDB, plan)
	if summary != nil {
		finishSummary(summary, session, dropped)
	}
	return summary, err
}

func commitGrades(session *importer.Session) (*models.ImportSummary, error) {
	records, dropped, err := importer.NormalizeGrades(session.Sheet)
	if err != nil {
		return nil, err
	}

	refs, err := importer.LoadGradeRefs(uploadsDB, session.ProfessorID, records)
	if err != nil {
		return nil, err
	}

	plan := importer.PlanGrades(records, refs, time.Now())
	summary, err := importer.ApplyGradePlan(uploadsDB, plan)
	if summary != nil {
		finishSummary(summary, session, dropped)
	}
	return summary, err
}

// finishSummary reports against the full sheet, counting the rows dropped
// during normalization.
func finishSummary(summary *models.ImportSummary, session *importer.Session, dropped int) {
	summary.Total = len(session.Sheet.Rows)
	if dropped > 0 {
		summary.Warnings = append(summary.Warnings,
			fmt.Sprintf("%d rows were ignored because mandatory columns were empty", dropped))
	}
}

func preview(sheet *importer.Sheet) []importer.Row {
	if len(sheet.Rows) <= previewRows {
		return sheet.Rows
	}
	return sheet.Rows[:previewRows]
}

func sessionForProfessor(c *fiber.Ctx) (*importer.Session, bool) {
	session, ok := store.Get(c.Params("id"))
	if !ok || session.ProfessorID != auth.ProfessorID(c) {
		return nil, false
	}
	return session, true
}
