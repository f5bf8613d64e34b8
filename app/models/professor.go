package models

import "time"

type Professor struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string    `json:"name" gorm:"not null" validate:"required"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Password  string    `json:"-" gorm:"not null" validate:"required,min=8"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	Subjects  []*Subject `json:"subjects,omitempty" gorm:"foreignKey:ProfessorID;references:ID"`
}
