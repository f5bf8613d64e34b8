package database

import (
	"database/sql"

	"github.com/brunapfe/SIGA/app/models"
	"github.com/lib/pq"
)

func GetAllStudents(db *sql.DB) ([]*models.Student, error) {
	query := `
		SELECT s.id, s.name, s.student_id, s.email, s.sexo, s.renda_media, s.raca,
			   s.course_id, s.created_at, c.id, c.name, c.code
		FROM students s
		JOIN courses c ON c.id = s.course_id
		ORDER BY s.name
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStudents(rows)
}

func GetStudentsByCourse(db *sql.DB, courseID string) ([]*models.Student, error) {
	query := `
		SELECT s.id, s.name, s.student_id, s.email, s.sexo, s.renda_media, s.raca,
			   s.course_id, s.created_at, c.id, c.name, c.code
		FROM students s
		JOIN courses c ON c.id = s.course_id
		WHERE s.course_id = $1
		ORDER BY s.name
	`
	rows, err := db.Query(query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStudents(rows)
}

func scanStudents(rows *sql.Rows) ([]*models.Student, error) {
	var students []*models.Student
	for rows.Next() {
		student := &models.Student{}
		course := &models.Course{}
		if err := rows.Scan(
			&student.ID, &student.Name, &student.StudentID, &student.Email,
			&student.Sexo, &student.RendaMedia, &student.Raca,
			&student.CourseID, &student.CreatedAt,
			&course.ID, &course.Name, &course.Code,
		); err != nil {
			return nil, err
		}
		student.Course = course
		students = append(students, student)
	}
	return students, rows.Err()
}

func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	student := &models.Student{}
	course := &models.Course{}
	query := `
		SELECT s.id, s.name, s.student_id, s.email, s.sexo, s.renda_media, s.raca,
			   s.course_id, s.created_at, c.id, c.name, c.code
		FROM students s
		JOIN courses c ON c.id = s.course_id
		WHERE s.id = $1
	`
	err := db.QueryRow(query, studentID).Scan(
		&student.ID, &student.Name, &student.StudentID, &student.Email,
		&student.Sexo, &student.RendaMedia, &student.Raca,
		&student.CourseID, &student.CreatedAt,
		&course.ID, &course.Name, &course.Code,
	)
	if err != nil {
		return nil, err
	}
	student.Course = course
	return student, nil
}

func CreateStudent(db *sql.DB, student *models.Student) error {
	query := `
		INSERT INTO students (name, student_id, email, sexo, renda_media, raca, course_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return db.QueryRow(query,
		student.Name, student.StudentID, student.Email,
		student.Sexo, student.RendaMedia, student.Raca, student.CourseID,
	).Scan(&student.ID, &student.CreatedAt)
}

func UpdateStudent(db *sql.DB, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, student_id = $2, email = $3, sexo = $4, renda_media = $5, raca = $6, course_id = $7
		WHERE id = $8
	`
	result, err := db.Exec(query,
		student.Name, student.StudentID, student.Email,
		student.Sexo, student.RendaMedia, student.Raca, student.CourseID, student.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteStudent(db *sql.DB, studentID string) error {
	result, err := db.Exec(`DELETE FROM students WHERE id = $1`, studentID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// StudentsByNaturalKey returns existing students keyed by their registration
// number (the import natural key), restricted to the keys of interest.
func StudentsByNaturalKey(db *sql.DB, naturalKeys []string) (map[string]*models.Student, error) {
	byKey := make(map[string]*models.Student)
	if len(naturalKeys) == 0 {
		return byKey, nil
	}

	query := `
		SELECT id, name, student_id, email, sexo, renda_media, raca, course_id, created_at
		FROM students
		WHERE student_id = ANY($1)
	`
	rows, err := db.Query(query, pq.Array(naturalKeys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		student := &models.Student{}
		if err := rows.Scan(
			&student.ID, &student.Name, &student.StudentID, &student.Email,
			&student.Sexo, &student.RendaMedia, &student.Raca,
			&student.CourseID, &student.CreatedAt,
		); err != nil {
			return nil, err
		}
		byKey[student.StudentID] = student
	}
	return byKey, rows.Err()
}
