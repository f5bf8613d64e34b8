package models

import "time"

// Grade stores one assessment result for a student in a subject.
type Grade struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID      string     `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	SubjectID      string     `json:"subject_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AssessmentType string     `json:"assessment_type" gorm:"not null;default:Prova" validate:"required"`
	AssessmentName string     `json:"assessment_name" gorm:"not null" validate:"required"`
	Grade          float64    `json:"grade" gorm:"not null;type:decimal(5,2)" validate:"gte=0"`
	MaxGrade       float64    `json:"max_grade" gorm:"default:10;type:decimal(5,2)" validate:"gte=0"`
	DateAssigned   *time.Time `json:"date_assigned,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	SubjectName    string     `json:"subject_name,omitempty" gorm:"-"`
}
