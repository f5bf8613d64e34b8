package database

import (
	"database/sql"
	"strings"

	"github.com/brunapfe/SIGA/app/models"
)

func GetSubjectsByProfessor(db *sql.DB, professorID string) ([]*models.Subject, error) {
	query := `
		SELECT s.id, s.name, s.code, s.year, s.semester, s.professor_id, s.course_id, s.created_at,
			   c.id, c.name, c.code
		FROM subjects s
		LEFT JOIN courses c ON c.id = s.course_id
		WHERE s.professor_id = $1
		ORDER BY s.year DESC, s.semester DESC, s.name
	`
	rows, err := db.Query(query, professorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject := &models.Subject{}
		var courseID, courseName, courseCode sql.NullString
		if err := rows.Scan(
			&subject.ID, &subject.Name, &subject.Code, &subject.Year, &subject.Semester,
			&subject.ProfessorID, &subject.CourseID, &subject.CreatedAt,
			&courseID, &courseName, &courseCode,
		); err != nil {
			return nil, err
		}
		if courseID.Valid {
			course := &models.Course{ID: courseID.String, Name: courseName.String}
			if courseCode.Valid {
				course.Code = &courseCode.String
			}
			subject.Course = course
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

func GetSubjectsByCourse(db *sql.DB, courseID string) ([]*models.Subject, error) {
	query := `
		SELECT id, name, code, year, semester, professor_id, course_id, created_at
		FROM subjects
		WHERE course_id = $1
		ORDER BY year DESC, semester DESC, name
	`
	rows, err := db.Query(query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject := &models.Subject{}
		if err := rows.Scan(
			&subject.ID, &subject.Name, &subject.Code, &subject.Year, &subject.Semester,
			&subject.ProfessorID, &subject.CourseID, &subject.CreatedAt,
		); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

func GetSubjectByID(db *sql.DB, subjectID string) (*models.Subject, error) {
	subject := &models.Subject{}
	query := `
		SELECT id, name, code, year, semester, professor_id, course_id, created_at
		FROM subjects WHERE id = $1
	`
	err := db.QueryRow(query, subjectID).Scan(
		&subject.ID, &subject.Name, &subject.Code, &subject.Year, &subject.Semester,
		&subject.ProfessorID, &subject.CourseID, &subject.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return subject, nil
}

func CreateSubject(db *sql.DB, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (name, code, year, semester, professor_id, course_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return db.QueryRow(query,
		subject.Name, subject.Code, subject.Year, subject.Semester,
		subject.ProfessorID, subject.CourseID,
	).Scan(&subject.ID, &subject.CreatedAt)
}

func UpdateSubject(db *sql.DB, subject *models.Subject) error {
	query := `
		UPDATE subjects
		SET name = $1, code = $2, year = $3, semester = $4, course_id = $5
		WHERE id = $6 AND professor_id = $7
	`
	result, err := db.Exec(query,
		subject.Name, subject.Code, subject.Year, subject.Semester,
		subject.CourseID, subject.ID, subject.ProfessorID,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteSubject(db *sql.DB, subjectID, professorID string) error {
	result, err := db.Exec(`DELETE FROM subjects WHERE id = $1 AND professor_id = $2`, subjectID, professorID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SubjectKeyMap returns subject IDs keyed by lower-cased name and code,
// scoped to the given professor. Used by the import reconciler.
func SubjectKeyMap(db *sql.DB, professorID string) (map[string]string, error) {
	rows, err := db.Query(`SELECT id, name, code FROM subjects WHERE professor_id = $1`, professorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]string)
	for rows.Next() {
		var id, name, code string
		if err := rows.Scan(&id, &name, &code); err != nil {
			return nil, err
		}
		keys[strings.ToLower(strings.TrimSpace(name))] = id
		if code != "" {
			keys[strings.ToLower(strings.TrimSpace(code))] = id
		}
	}
	return keys, rows.Err()
}
