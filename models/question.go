package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question is a prompt reviewers answer for a department. DepartmentName is a
// snapshot taken when the question is written.
type Question struct {
	ID             string    `gorm:"primaryKey;type:char(36);column:id" json:"_id"`
	Text           string    `gorm:"column:text;not null" json:"text"`
	DepartmentID   string    `gorm:"column:department_id;type:char(36);index;not null" json:"departmentId"`
	DepartmentName string    `gorm:"column:department_name;not null" json:"departmentName"`
	Order          int       `gorm:"column:order;default:0" json:"order"`
	IsActive       bool      `gorm:"column:is_active;default:true" json:"isActive"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) BeforeCreate(*gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
