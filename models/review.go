package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReviewStatus string

const (
	ReviewStatusDraft     ReviewStatus = "draft"
	ReviewStatusCompleted ReviewStatus = "completed"
	ReviewStatusArchived  ReviewStatus = "archived"
)

// Valid reports whether s is one of the known statuses.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusDraft, ReviewStatusCompleted, ReviewStatusArchived:
		return true
	}
	return false
}

// ReviewAnswer is embedded in its Review. QuestionText is a snapshot.
type ReviewAnswer struct {
	QuestionID   string `json:"questionId"`
	QuestionText string `json:"questionText"`
	Answer       string `json:"answer"`
	Rating       *int   `json:"rating,omitempty"`
}

// Review is one site visit for a zone and department. ZoneName and
// DepartmentName are copied at write time and are not kept in sync with
// later renames.
type Review struct {
	ID             string                            `gorm:"primaryKey;type:char(36);column:id" json:"_id"`
	ZoneID         string                            `gorm:"column:zone_id;type:char(36);index;not null" json:"zoneId"`
	ZoneName       string                            `gorm:"column:zone_name;not null" json:"zoneName"`
	DepartmentID   string                            `gorm:"column:department_id;type:char(36);index;not null" json:"departmentId"`
	DepartmentName string                            `gorm:"column:department_name;not null" json:"departmentName"`
	ReviewDate     time.Time                         `gorm:"column:review_date;index;not null" json:"reviewDate"`
	Day            string                            `gorm:"column:day;not null" json:"day"`
	Venue          string                            `gorm:"column:venue;not null" json:"venue"`
	Aamil          *string                           `gorm:"column:aamil" json:"aamil,omitempty"`
	ZonalHead      *string                           `gorm:"column:zonal_head" json:"zonalHead,omitempty"`
	ZoneCapacity   *int                              `gorm:"column:zone_capacity" json:"zoneCapacity,omitempty"`
	MumineenCount  *int                              `gorm:"column:mumineen_count" json:"mumineenCount,omitempty"`
	ThaalCount     *int                              `gorm:"column:thaal_count" json:"thaalCount,omitempty"`
	ReviewedBy     string                            `gorm:"column:reviewed_by;type:char(36);not null" json:"reviewedBy"`
	ReviewerName   string                            `gorm:"column:reviewer_name;not null" json:"reviewerName"`
	Answers        datatypes.JSONSlice[ReviewAnswer] `gorm:"column:answers" json:"answers"`
	OverallNotes   *string                           `gorm:"column:overall_notes" json:"overallNotes,omitempty"`
	Status         ReviewStatus                      `gorm:"column:status;size:16;default:draft" json:"status"`
	CreatedAt      time.Time                         `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt      time.Time                         `gorm:"column:updated_at" json:"updatedAt"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = ReviewStatusDraft
	}
	return nil
}
