package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleReviewer = "reviewer"
	RoleViewer   = "viewer"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:char(36);column:id" json:"id"`
	Email     string    `gorm:"column:email;size:191;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password;not null" json:"-"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Role      string    `gorm:"column:role;size:16;default:reviewer" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleReviewer
	}
	return nil
}

// ValidRole reports whether role is one of admin, reviewer, viewer.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleReviewer, RoleViewer:
		return true
	}
	return false
}

// AllModels lists every table owned by this service, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Zone{},
		&Department{},
		&Question{},
		&Review{},
	}
}
