package services

import (
	"context"
	"fmt"

	"pmo-review-api/config"
	"pmo-review-api/models"
	"pmo-review-api/utils"
)

type DepartmentService struct {
	pool *config.DBPool
}

func NewDepartmentService(pool *config.DBPool) *DepartmentService {
	return &DepartmentService{pool: pool}
}

func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	var departments []models.Department
	if err := db.Order("name ASC").Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

func (s *DepartmentService) Get(ctx context.Context, id string) (*models.Department, error) {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	var department models.Department
	if err := db.Where("id = ?", id).First(&department).Error; err != nil {
		return nil, notFound(err)
	}
	return &department, nil
}

func (s *DepartmentService) Create(ctx context.Context, name string, description *string) (*models.Department, error) {
	department := models.Department{Name: utils.SanitizeInput(name)}
	if department.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	if description != nil {
		d := utils.SanitizeInput(*description)
		department.Description = &d
	}
	if err := db.Create(&department).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	return &department, nil
}

// Update applies a partial update. Question and review snapshots of the old
// name are left as they are.
func (s *DepartmentService) Update(ctx context.Context, id string, in ReferenceInput) (*models.Department, error) {
	updates, err := in.updates()
	if err != nil {
		return nil, err
	}
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	var department models.Department
	if err := db.Where("id = ?", id).First(&department).Error; err != nil {
		return nil, notFound(err)
	}
	if len(updates) > 0 {
		if err := db.Model(&department).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, ErrDuplicateName
			}
			return nil, fmt.Errorf("failed to update department: %w", err)
		}
	}
	return &department, nil
}

func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&models.Department{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete department: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
