package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	steps := []struct {
		name string
		fn   func(*sql.DB) error
	}{
		{"pgcrypto extension", createPgcryptoExtension},
		{"professors table", createProfessorsTable},
		{"courses table", createCoursesTable},
		{"subjects table", createSubjectsTable},
		{"students table", createStudentsTable},
		{"grades table", createGradesTable},
		{"student demographic columns", addStudentDemographicColumns},
	}

	for _, step := range steps {
		if err := step.fn(db); err != nil {
			log.Printf("Failed to run migration for %s: %v", step.name, err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createPgcryptoExtension(db *sql.DB) error {
	_, err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`)
	return err
}

func createProfessorsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS professors (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.Exec(query)
	return err
}

func createCoursesTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS courses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL UNIQUE,
			code TEXT UNIQUE,
			total_semesters INTEGER NOT NULL DEFAULT 8,
			start_date DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.Exec(query)
	return err
}

func createSubjectsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS subjects (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			code TEXT NOT NULL,
			year INTEGER NOT NULL,
			semester INTEGER NOT NULL,
			professor_id UUID NOT NULL REFERENCES professors(id) ON DELETE CASCADE,
			course_id UUID REFERENCES courses(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_subjects_professor ON subjects(professor_id);
		CREATE INDEX IF NOT EXISTS idx_subjects_course ON subjects(course_id);
	`
	_, err := db.Exec(query)
	return err
}

func createStudentsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			student_id TEXT NOT NULL UNIQUE,
			email TEXT,
			course_id UUID NOT NULL REFERENCES courses(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_students_course ON students(course_id);
	`
	_, err := db.Exec(query)
	return err
}

func createGradesTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS grades (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			subject_id UUID NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
			assessment_type TEXT NOT NULL DEFAULT 'Prova',
			assessment_name TEXT NOT NULL,
			grade NUMERIC(5,2) NOT NULL,
			max_grade NUMERIC(5,2) NOT NULL DEFAULT 10,
			date_assigned DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_grades_student ON grades(student_id);
		CREATE INDEX IF NOT EXISTS idx_grades_subject ON grades(subject_id);
	`
	_, err := db.Exec(query)
	return err
}

func addStudentDemographicColumns(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'students'
				AND column_name = 'sexo'
			) THEN
				ALTER TABLE students ADD COLUMN sexo TEXT;
				ALTER TABLE students ADD COLUMN renda_media NUMERIC(10,2);
				ALTER TABLE students ADD COLUMN raca TEXT;
				RAISE NOTICE 'Added demographic columns to students';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for demographic columns: %v", err)
		return err
	}
	return nil
}
