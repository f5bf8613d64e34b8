package database

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/brunapfe/SIGA/app/models"
)

// ErrCourseInUse is returned when deleting a course that still has students.
var ErrCourseInUse = errors.New("course has students assigned to it")

func GetAllCourses(db *sql.DB) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.name, c.code, c.total_semesters, c.start_date, c.created_at,
			   COUNT(s.id) AS student_count
		FROM courses c
		LEFT JOIN students s ON s.course_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(
			&course.ID, &course.Name, &course.Code, &course.TotalSemesters,
			&course.StartDate, &course.CreatedAt, &course.StudentCount,
		); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func GetCourseByID(db *sql.DB, courseID string) (*models.Course, error) {
	course := &models.Course{}
	query := `
		SELECT c.id, c.name, c.code, c.total_semesters, c.start_date, c.created_at,
			   COUNT(s.id) AS student_count
		FROM courses c
		LEFT JOIN students s ON s.course_id = c.id
		WHERE c.id = $1
		GROUP BY c.id
	`
	err := db.QueryRow(query, courseID).Scan(
		&course.ID, &course.Name, &course.Code, &course.TotalSemesters,
		&course.StartDate, &course.CreatedAt, &course.StudentCount,
	)
	if err != nil {
		return nil, err
	}

	subjects, err := GetSubjectsByCourse(db, courseID)
	if err != nil {
		return nil, err
	}
	course.Subjects = subjects

	return course, nil
}

func CreateCourse(db *sql.DB, course *models.Course) error {
	query := `
		INSERT INTO courses (name, code, total_semesters, start_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return db.QueryRow(query, course.Name, course.Code, course.TotalSemesters, course.StartDate).
		Scan(&course.ID, &course.CreatedAt)
}

func UpdateCourse(db *sql.DB, course *models.Course) error {
	query := `
		UPDATE courses
		SET name = $1, code = $2, total_semesters = $3, start_date = $4
		WHERE id = $5
	`
	result, err := db.Exec(query, course.Name, course.Code, course.TotalSemesters, course.StartDate, course.ID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteCourse(db *sql.DB, courseID string) error {
	var studentCount int
	err := db.QueryRow(`SELECT COUNT(*) FROM students WHERE course_id = $1`, courseID).Scan(&studentCount)
	if err != nil {
		return err
	}
	if studentCount > 0 {
		return ErrCourseInUse
	}

	result, err := db.Exec(`DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CourseKeyMap returns course IDs keyed by lower-cased name and code. Used by
// the import reconciler to resolve course references in a single read.
func CourseKeyMap(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT id, name, code FROM courses`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]string)
	for rows.Next() {
		var id, name string
		var code sql.NullString
		if err := rows.Scan(&id, &name, &code); err != nil {
			return nil, err
		}
		keys[strings.ToLower(strings.TrimSpace(name))] = id
		if code.Valid && code.String != "" {
			keys[strings.ToLower(strings.TrimSpace(code.String))] = id
		}
	}
	return keys, rows.Err()
}

// CreateCoursesByName inserts bare courses for names mentioned in an import
// that do not exist yet. Returns name -> new id.
func CreateCoursesByName(db *sql.DB, names []string) (map[string]string, error) {
	created := make(map[string]string)
	for _, name := range names {
		var id string
		err := db.QueryRow(`INSERT INTO courses (name) VALUES ($1) RETURNING id`, name).Scan(&id)
		if err != nil {
			return created, err
		}
		created[strings.ToLower(name)] = id
	}
	return created, nil
}
