package importer

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/brunapfe/SIGA/app/database"
	"github.com/brunapfe/SIGA/app/models"
)

// dateLayouts accepted for the date_assigned column.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

// StudentRefs is the snapshot of reference data a student import resolves
// against. Loaded once per commit; concurrent imports may race on it, the
// same way the original system did.
type StudentRefs struct {
	Courses  map[string]string          // lower(name) and lower(code) -> course id
	Existing map[string]*models.Student // natural key -> stored student
}

// StudentPlan partitions normalized student records into writes.
type StudentPlan struct {
	Inserts  []*models.Student
	Updates  []*models.Student
	Warnings []string
	Total    int
}

// GradeKey is the dedup identity of a grade during import.
type GradeKey struct {
	StudentID      string
	SubjectID      string
	AssessmentName string
	AssessmentType string
	Date           string
}

// GradeRefs is the snapshot of reference data a grade import resolves against.
type GradeRefs struct {
	Students map[string]*models.Student // natural key -> stored student
	Subjects map[string]string          // lower(name) and lower(code) -> subject id
	Existing map[GradeKey]*models.Grade
}

// LoadStudentRefs performs the batched reference read for a student import.
func LoadStudentRefs(db *sql.DB, records []StudentRecord) (*StudentRefs, error) {
	courses, err := database.CourseKeyMap(db)
	if err != nil {
		return nil, fmt.Errorf("loading course references: %w", err)
	}

	keys := make([]string, 0, len(records))
	for _, r := range records {
		keys = append(keys, r.StudentID)
	}
	existing, err := database.StudentsByNaturalKey(db, keys)
	if err != nil {
		return nil, fmt.Errorf("loading existing students: %w", err)
	}

	return &StudentRefs{Courses: courses, Existing: existing}, nil
}

// MissingCourses returns the distinct course names referenced by the records
// that do not resolve against the loaded course map, in first-seen order.
// The import auto-creates these before planning.
func MissingCourses(records []StudentRecord, courses map[string]string) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, r := range records {
		name := strings.TrimSpace(r.Course)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := courses[key]; ok || seen[key] {
			continue
		}
		seen[key] = true
		missing = append(missing, name)
	}
	return missing
}

// PlanStudents partitions records into inserts and updates by the
// student_id natural key. Records whose course reference cannot be resolved
// are excluded with a warning. Updates are emitted only when a field
// actually changed.
func PlanStudents(records []StudentRecord, refs *StudentRefs) *StudentPlan {
	plan := &StudentPlan{Total: len(records)}

	for _, r := range records {
		course := strings.TrimSpace(r.Course)
		if course == "" {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("student %s (%s): course column is empty", r.StudentID, r.Name))
			continue
		}
		courseID, ok := refs.Courses[strings.ToLower(course)]
		if !ok {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("student %s (%s): course %q not found", r.StudentID, r.Name, r.Course))
			continue
		}

		existing, found := refs.Existing[r.StudentID]
		if !found {
			plan.Inserts = append(plan.Inserts, &models.Student{
				Name:       r.Name,
				StudentID:  r.StudentID,
				Email:      optionalString(r.Email),
				Sexo:       optionalString(r.Sexo),
				RendaMedia: optionalFloat(r.RendaMedia),
				Raca:       optionalString(r.Raca),
				CourseID:   courseID,
			})
			continue
		}

		updated := *existing
		changed := false
		if existing.Name != r.Name {
			updated.Name = r.Name
			changed = true
		}
		if r.Email != "" && deref(existing.Email) != r.Email {
			updated.Email = optionalString(r.Email)
			changed = true
		}
		if existing.CourseID != courseID {
			updated.CourseID = courseID
			changed = true
		}
		if r.Sexo != "" && deref(existing.Sexo) != r.Sexo {
			updated.Sexo = optionalString(r.Sexo)
			changed = true
		}
		if r.RendaMedia != 0 && derefFloat(existing.RendaMedia) != r.RendaMedia {
			updated.RendaMedia = optionalFloat(r.RendaMedia)
			changed = true
		}
		if r.Raca != "" && deref(existing.Raca) != r.Raca {
			updated.Raca = optionalString(r.Raca)
			changed = true
		}

		if changed {
			plan.Updates = append(plan.Updates, &updated)
		}
	}

	return plan
}

// ApplyStudentPlan issues the batched insert followed by the conditional
// updates. There is no rollback across phases: a failed update leaves the
// completed insert batch in place and the error is surfaced as-is.
func ApplyStudentPlan(db *sql.DB, plan *StudentPlan) (*models.ImportSummary, error) {
	summary := &models.ImportSummary{Warnings: plan.Warnings, Total: plan.Total}
	if summary.Warnings == nil {
		summary.Warnings = []string{}
	}

	if len(plan.Inserts) > 0 {
		if err := batchInsertStudents(db, plan.Inserts); err != nil {
			return summary, err
		}
		summary.Inserted = len(plan.Inserts)
	}

	for _, student := range plan.Updates {
		if err := database.UpdateStudent(db, student); err != nil {
			return summary, err
		}
		summary.Updated++
	}

	log.Printf("Student import: %d inserted, %d updated, %d warnings (of %d rows)",
		summary.Inserted, summary.Updated, len(summary.Warnings), summary.Total)
	return summary, nil
}

func batchInsertStudents(db *sql.DB, students []*models.Student) error {
	var (
		placeholders []string
		args         []interface{}
	)
	for i, s := range students {
		base := i * 7
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, s.Name, s.StudentID, s.Email, s.Sexo, s.RendaMedia, s.Raca, s.CourseID)
	}

	query := `INSERT INTO students (name, student_id, email, sexo, renda_media, raca, course_id) VALUES ` +
		strings.Join(placeholders, ", ")
	_, err := db.Exec(query, args...)
	return err
}

// LoadGradeRefs performs the batched reference read for a grade import:
// students by natural key, the professor's subjects by name/code, and the
// current grades of the involved students for tuple deduplication.
func LoadGradeRefs(db *sql.DB, professorID string, records []GradeRecord) (*GradeRefs, error) {
	keys := make([]string, 0, len(records))
	for _, r := range records {
		keys = append(keys, r.StudentID)
	}
	students, err := database.StudentsByNaturalKey(db, keys)
	if err != nil {
		return nil, fmt.Errorf("loading students: %w", err)
	}

	subjects, err := database.SubjectKeyMap(db, professorID)
	if err != nil {
		return nil, fmt.Errorf("loading subject references: %w", err)
	}

	ids := make([]string, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	grades, err := database.GradesForStudents(db, ids)
	if err != nil {
		return nil, fmt.Errorf("loading existing grades: %w", err)
	}

	existing := make(map[GradeKey]*models.Grade, len(grades))
	for _, g := range grades {
		existing[keyForGrade(g)] = g
	}

	return &GradeRefs{Students: students, Subjects: subjects, Existing: existing}, nil
}

func keyForGrade(g *models.Grade) GradeKey {
	date := ""
	if g.DateAssigned != nil {
		date = g.DateAssigned.Format("2006-01-02")
	}
	return GradeKey{
		StudentID:      g.StudentID,
		SubjectID:      g.SubjectID,
		AssessmentName: g.AssessmentName,
		AssessmentType: g.AssessmentType,
		Date:           date,
	}
}

// GradePlan partitions normalized grade records into writes.
type GradePlan struct {
	Inserts  []*models.Grade
	Updates  []*models.Grade
	Warnings []string
	Total    int
}

// PlanGrades resolves each record's student and subject references and
// deduplicates on the (student, subject, assessment name, assessment type,
// date) tuple. A matching tuple with a different grade value becomes an
// update; an identical one is a no-op.
func PlanGrades(records []GradeRecord, refs *GradeRefs, now time.Time) *GradePlan {
	plan := &GradePlan{Total: len(records)}
	planned := make(map[GradeKey]bool)

	for _, r := range records {
		student, ok := refs.Students[r.StudentID]
		if !ok {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("grade for %s: no student with that registration number", r.StudentID))
			continue
		}

		subjectID, ok := refs.Subjects[strings.ToLower(strings.TrimSpace(r.Subject))]
		if !ok {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("grade for %s: subject %q not found", r.StudentID, r.Subject))
			continue
		}

		date := parseDate(r.DateAssigned, now)
		grade := &models.Grade{
			StudentID:      student.ID,
			SubjectID:      subjectID,
			AssessmentType: r.AssessmentType,
			AssessmentName: r.AssessmentName,
			Grade:          r.Grade,
			MaxGrade:       r.MaxGrade,
			DateAssigned:   &date,
		}

		key := keyForGrade(grade)
		if planned[key] {
			continue // duplicate row inside the same upload
		}
		planned[key] = true

		existing, found := refs.Existing[key]
		if !found {
			plan.Inserts = append(plan.Inserts, grade)
			continue
		}
		if existing.Grade != grade.Grade || existing.MaxGrade != grade.MaxGrade {
			grade.ID = existing.ID
			plan.Updates = append(plan.Updates, grade)
		}
	}

	return plan
}

// ApplyGradePlan issues the batched insert followed by the conditional
// updates, with the same no-rollback semantics as ApplyStudentPlan.
func ApplyGradePlan(db *sql.DB, plan *GradePlan) (*models.ImportSummary, error) {
	summary := &models.ImportSummary{Warnings: plan.Warnings, Total: plan.Total}
	if summary.Warnings == nil {
		summary.Warnings = []string{}
	}

	if len(plan.Inserts) > 0 {
		if err := batchInsertGrades(db, plan.Inserts); err != nil {
			return summary, err
		}
		summary.Inserted = len(plan.Inserts)
	}

	for _, grade := range plan.Updates {
		if err := database.UpdateGrade(db, grade); err != nil {
			return summary, err
		}
		summary.Updated++
	}

	log.Printf("Grade import: %d inserted, %d updated, %d warnings (of %d rows)",
		summary.Inserted, summary.Updated, len(summary.Warnings), summary.Total)
	return summary, nil
}

func batchInsertGrades(db *sql.DB, grades []*models.Grade) error {
	var (
		placeholders []string
		args         []interface{}
	)
	for i, g := range grades {
		base := i * 7
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, g.StudentID, g.SubjectID, g.AssessmentType, g.AssessmentName, g.Grade, g.MaxGrade, g.DateAssigned)
	}

	query := `INSERT INTO grades (student_id, subject_id, assessment_type, assessment_name, grade, max_grade, date_assigned) VALUES ` +
		strings.Join(placeholders, ", ")
	_, err := db.Exec(query, args...)
	return err
}

func parseDate(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback.Truncate(24 * time.Hour)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback.Truncate(24 * time.Hour)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalFloat(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
