package database

import (
	"database/sql"

	"github.com/brunapfe/SIGA/app/models"
	"golang.org/x/crypto/bcrypt"
)

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func GetProfessorByEmail(db *sql.DB, email string) (*models.Professor, error) {
	professor := &models.Professor{}
	query := `SELECT id, name, email, password, created_at FROM professors WHERE email = $1`

	err := db.QueryRow(query, email).Scan(
		&professor.ID, &professor.Name, &professor.Email, &professor.Password, &professor.CreatedAt,
	)

	if err != nil {
		return nil, err
	}
	return professor, nil
}

func GetProfessorByID(db *sql.DB, professorID string) (*models.Professor, error) {
	professor := &models.Professor{}
	query := `SELECT id, name, email, password, created_at FROM professors WHERE id = $1`

	err := db.QueryRow(query, professorID).Scan(
		&professor.ID, &professor.Name, &professor.Email, &professor.Password, &professor.CreatedAt,
	)

	if err != nil {
		return nil, err
	}
	return professor, nil
}

func CreateProfessor(db *sql.DB, professor *models.Professor) error {
	hashed, err := hashPassword(professor.Password)
	if err != nil {
		return err
	}

	query := `INSERT INTO professors (name, email, password) VALUES ($1, $2, $3) RETURNING id, created_at`
	return db.QueryRow(query, professor.Name, professor.Email, hashed).Scan(&professor.ID, &professor.CreatedAt)
}

func UpdateProfessorPassword(db *sql.DB, professorID, newPassword string) error {
	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = db.Exec(`UPDATE professors SET password = $1 WHERE id = $2`, hashed, professorID)
	return err
}
