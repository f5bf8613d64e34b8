package database

import (
	"database/sql"

	"github.com/brunapfe/SIGA/app/models"
	"github.com/lib/pq"
)

func GetGradesByStudent(db *sql.DB, studentID string) ([]*models.Grade, error) {
	query := `
		SELECT g.id, g.student_id, g.subject_id, g.assessment_type, g.assessment_name,
			   g.grade, g.max_grade, g.date_assigned, g.created_at, s.name
		FROM grades g
		JOIN subjects s ON s.id = g.subject_id
		WHERE g.student_id = $1
		ORDER BY g.date_assigned DESC NULLS LAST, g.created_at DESC
	`
	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		grade := &models.Grade{}
		if err := rows.Scan(
			&grade.ID, &grade.StudentID, &grade.SubjectID, &grade.AssessmentType,
			&grade.AssessmentName, &grade.Grade, &grade.MaxGrade,
			&grade.DateAssigned, &grade.CreatedAt, &grade.SubjectName,
		); err != nil {
			return nil, err
		}
		grades = append(grades, grade)
	}
	return grades, rows.Err()
}

func CreateGrade(db *sql.DB, grade *models.Grade) error {
	query := `
		INSERT INTO grades (student_id, subject_id, assessment_type, assessment_name, grade, max_grade, date_assigned)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return db.QueryRow(query,
		grade.StudentID, grade.SubjectID, grade.AssessmentType, grade.AssessmentName,
		grade.Grade, grade.MaxGrade, grade.DateAssigned,
	).Scan(&grade.ID, &grade.CreatedAt)
}

func UpdateGrade(db *sql.DB, grade *models.Grade) error {
	query := `
		UPDATE grades
		SET assessment_type = $1, assessment_name = $2, grade = $3, max_grade = $4, date_assigned = $5
		WHERE id = $6
	`
	result, err := db.Exec(query,
		grade.AssessmentType, grade.AssessmentName, grade.Grade, grade.MaxGrade,
		grade.DateAssigned, grade.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteGrade(db *sql.DB, gradeID string) error {
	result, err := db.Exec(`DELETE FROM grades WHERE id = $1`, gradeID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GradesForStudents returns every grade belonging to the given students
// (database IDs). The import reconciler uses this snapshot to deduplicate by
// the (student, subject, assessment_name, assessment_type, date) tuple.
func GradesForStudents(db *sql.DB, studentIDs []string) ([]*models.Grade, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, student_id, subject_id, assessment_type, assessment_name,
			   grade, max_grade, date_assigned, created_at
		FROM grades
		WHERE student_id = ANY($1)
	`
	rows, err := db.Query(query, pq.Array(studentIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		grade := &models.Grade{}
		if err := rows.Scan(
			&grade.ID, &grade.StudentID, &grade.SubjectID, &grade.AssessmentType,
			&grade.AssessmentName, &grade.Grade, &grade.MaxGrade,
			&grade.DateAssigned, &grade.CreatedAt,
		); err != nil {
			return nil, err
		}
		grades = append(grades, grade)
	}
	return grades, rows.Err()
}
