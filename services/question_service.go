package services

import (
	"context"
	"errors"
	"fmt"

	"pmo-review-api/config"
	"pmo-review-api/models"
	"pmo-review-api/utils"

	"gorm.io/gorm"
)

type QuestionInput struct {
	Text           *string `json:"text"`
	DepartmentID   *string `json:"departmentId"`
	DepartmentName *string `json:"departmentName"`
	Order          *int    `json:"order"`
	IsActive       *bool   `json:"isActive"`
}

type QuestionService struct {
	pool *config.DBPool
}

func NewQuestionService(pool *config.DBPool) *QuestionService {
	return &QuestionService{pool: pool}
}

// ListActive returns active questions, optionally for one department, in
// display order.
func (s *QuestionService) ListActive(ctx context.Context, departmentID string) ([]models.Question, error) {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	q := db.Where("is_active = ?", true)
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}
	var questions []models.Question
	if err := q.Order("`order` ASC, created_at ASC").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func (s *QuestionService) Get(ctx context.Context, id string) (*models.Question, error) {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	var question models.Question
	if err := db.Where("id = ?", id).First(&question).Error; err != nil {
		return nil, notFound(err)
	}
	return &question, nil
}

// Create stores a question. When the department name snapshot is missing it
// is copied from the department record.
func (s *QuestionService) Create(ctx context.Context, in QuestionInput) (*models.Question, error) {
	if in.Text == nil || utils.SanitizeInput(*in.Text) == "" || in.DepartmentID == nil || *in.DepartmentID == "" {
		return nil, fmt.Errorf("%w: text and departmentId are required", ErrValidation)
	}
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	question := models.Question{
		Text:         utils.SanitizeInput(*in.Text),
		DepartmentID: *in.DepartmentID,
		IsActive:     true,
	}
	if in.Order != nil {
		question.Order = *in.Order
	}
	if in.IsActive != nil {
		question.IsActive = *in.IsActive
	}
	if in.DepartmentName != nil && utils.SanitizeInput(*in.DepartmentName) != "" {
		question.DepartmentName = utils.SanitizeInput(*in.DepartmentName)
	} else {
		name, err := departmentName(db, question.DepartmentID)
		if err != nil {
			return nil, err
		}
		question.DepartmentName = name
	}

	// Select("*") so an explicit isActive=false is written instead of the column default.
	if err := db.Select("*").Create(&question).Error; err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return &question, nil
}

func (s *QuestionService) Update(ctx context.Context, id string, in QuestionInput) (*models.Question, error) {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	var question models.Question
	if err := db.Where("id = ?", id).First(&question).Error; err != nil {
		return nil, notFound(err)
	}

	updates := map[string]interface{}{}
	if in.Text != nil {
		updates["text"] = utils.SanitizeInput(*in.Text)
	}
	if in.DepartmentID != nil && *in.DepartmentID != question.DepartmentID {
		updates["department_id"] = *in.DepartmentID
		if in.DepartmentName == nil {
			name, err := departmentName(db, *in.DepartmentID)
			if err != nil {
				return nil, err
			}
			updates["department_name"] = name
		}
	}
	if in.DepartmentName != nil {
		updates["department_name"] = utils.SanitizeInput(*in.DepartmentName)
	}
	if in.Order != nil {
		updates["order"] = *in.Order
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}

	if len(updates) > 0 {
		if err := db.Model(&question).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update question: %w", err)
		}
	}
	return &question, nil
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&models.Question{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete question: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func departmentName(db *gorm.DB, id string) (string, error) {
	var department models.Department
	if err := db.Select("id", "name").Where("id = ?", id).First(&department).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidReference
		}
		return "", err
	}
	return department.Name, nil
}

func zoneName(db *gorm.DB, id string) (string, error) {
	var zone models.Zone
	if err := db.Select("id", "name").Where("id = ?", id).First(&zone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidReference
		}
		return "", err
	}
	return zone.Name, nil
}
