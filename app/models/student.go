package models

import "time"

type Student struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name       string    `json:"name" gorm:"not null" validate:"required"`
	StudentID  string    `json:"student_id" gorm:"uniqueIndex;not null" validate:"required"`
	Email      *string   `json:"email,omitempty"`
	Sexo       *string   `json:"sexo,omitempty"`
	RendaMedia *float64  `json:"renda_media,omitempty" gorm:"type:decimal(10,2)"`
	Raca       *string   `json:"raca,omitempty"`
	CourseID   string    `json:"course_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	Course     *Course   `json:"course,omitempty" gorm:"foreignKey:CourseID;references:ID"`
	Grades     []*Grade  `json:"grades,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}
