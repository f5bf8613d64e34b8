package models

import "time"

type Course struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name           string     `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	Code           *string    `json:"code,omitempty" gorm:"uniqueIndex"`
	TotalSemesters int        `json:"total_semesters" gorm:"default:8" validate:"gte=1"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	StudentCount   int        `json:"student_count" gorm:"-"`
	CurrentSemester int       `json:"current_semester" gorm:"-"`
	Subjects       []*Subject `json:"subjects,omitempty" gorm:"foreignKey:CourseID;references:ID"`
	Students       []*Student `json:"students,omitempty" gorm:"foreignKey:CourseID;references:ID"`
}
