package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Zone is a geographic area visited by reviewers.
type Zone struct {
	ID          string    `gorm:"primaryKey;type:char(36);column:id" json:"_id"`
	Name        string    `gorm:"column:name;size:191;uniqueIndex;not null" json:"name"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Zone) TableName() string {
	return "zones"
}

func (z *Zone) BeforeCreate(*gorm.DB) error {
	if z.ID == "" {
		z.ID = uuid.NewString()
	}
	return nil
}

// Department is a functional unit whose work is reviewed in each zone.
type Department struct {
	ID          string    `gorm:"primaryKey;type:char(36);column:id" json:"_id"`
	Name        string    `gorm:"column:name;size:191;uniqueIndex;not null" json:"name"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Department) TableName() string {
	return "departments"
}

func (d *Department) BeforeCreate(*gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
