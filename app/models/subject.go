package models

import "time"

type Subject struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name        string    `json:"name" gorm:"not null" validate:"required"`
	Code        string    `json:"code" gorm:"not null" validate:"required"`
	Year        int       `json:"year" gorm:"not null" validate:"gte=2000"`
	Semester    int       `json:"semester" gorm:"not null" validate:"gte=1,lte=2"`
	ProfessorID string    `json:"professor_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CourseID    *string   `json:"course_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	Course      *Course   `json:"course,omitempty" gorm:"foreignKey:CourseID;references:ID"`
}
