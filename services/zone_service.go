package services

import (
	"context"
	"fmt"

	"pmo-review-api/config"
	"pmo-review-api/models"
	"pmo-review-api/utils"
)

// ReferenceInput carries the writable fields of a Zone or Department. Nil
// pointers are left untouched on update.
type ReferenceInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (in ReferenceInput) updates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if in.Name != nil {
		name := utils.SanitizeInput(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		updates["name"] = name
	}
	if in.Description != nil {
		updates["description"] = utils.SanitizeInput(*in.Description)
	}
	return updates, nil
}

type ZoneService struct {
	pool *config.DBPool
}

func NewZoneService(pool *config.DBPool) *ZoneService {
	return &ZoneService{pool: pool}
}

// List returns all zones sorted by name.
func (s *ZoneService) List(ctx context.Context) ([]models.Zone, error) {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	var zones []models.Zone
	if err := db.Order("name ASC").Find(&zones).Error; err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	return zones, nil
}

func (s *ZoneService) Get(ctx context.Context, id string) (*models.Zone, error) {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	var zone models.Zone
	if err := db.Where("id = ?", id).First(&zone).Error; err != nil {
		return nil, notFound(err)
	}
	return &zone, nil
}

func (s *ZoneService) Create(ctx context.Context, name string, description *string) (*models.Zone, error) {
	zone := models.Zone{Name: utils.SanitizeInput(name)}
	if zone.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	if description != nil {
		d := utils.SanitizeInput(*description)
		zone.Description = &d
	}
	if err := db.Create(&zone).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create zone: %w", err)
	}
	return &zone, nil
}

// Update applies a partial update. Existing reviews keep their zoneName
// snapshot; renames do not cascade.
func (s *ZoneService) Update(ctx context.Context, id string, in ReferenceInput) (*models.Zone, error) {
	updates, err := in.updates()
	if err != nil {
		return nil, err
	}
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	var zone models.Zone
	if err := db.Where("id = ?", id).First(&zone).Error; err != nil {
		return nil, notFound(err)
	}
	if len(updates) > 0 {
		if err := db.Model(&zone).Updates(updates).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, ErrDuplicateName
			}
			return nil, fmt.Errorf("failed to update zone: %w", err)
		}
	}
	return &zone, nil
}

func (s *ZoneService) Delete(ctx context.Context, id string) error {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&models.Zone{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete zone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
