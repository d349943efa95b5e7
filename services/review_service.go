package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"pmo-review-api/config"
	"pmo-review-api/models"
	"pmo-review-api/utils"

	"gorm.io/gorm"
)

// ReviewInput is the writable part of a review. Reviewer identity is not part
// of it; it always comes from the session.
type ReviewInput struct {
	ZoneID         *string                `json:"zoneId"`
	ZoneName       *string                `json:"zoneName"`
	DepartmentID   *string                `json:"departmentId"`
	DepartmentName *string                `json:"departmentName"`
	ReviewDate     *string                `json:"reviewDate"`
	Day            *string                `json:"day"`
	Venue          *string                `json:"venue"`
	Aamil          *string                `json:"aamil"`
	ZonalHead      *string                `json:"zonalHead"`
	ZoneCapacity   *int                   `json:"zoneCapacity"`
	MumineenCount  *int                   `json:"mumineenCount"`
	ThaalCount     *int                   `json:"thaalCount"`
	Answers        *[]models.ReviewAnswer `json:"answers"`
	OverallNotes   *string                `json:"overallNotes"`
	Status         *models.ReviewStatus   `json:"status"`
}

// Reviewer identifies the authenticated user submitting a review.
type Reviewer struct {
	ID   string
	Name string
}

type ReviewService struct {
	pool *config.DBPool
}

func NewReviewService(pool *config.DBPool) *ReviewService {
	return &ReviewService{pool: pool}
}

// List returns reviews, most recent visit first. An empty status returns all.
func (s *ReviewService) List(ctx context.Context, status string) ([]models.Review, error) {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	q := db.Order("review_date DESC")
	if status != "" {
		if !models.ReviewStatus(status).Valid() {
			return nil, ErrInvalidStatus
		}
		q = q.Where("status = ?", status)
	}
	var reviews []models.Review
	if err := q.Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// ListAll returns every review, most recent visit first.
func (s *ReviewService) ListAll(ctx context.Context) ([]models.Review, error) {
	return s.List(ctx, "")
}

func (s *ReviewService) Get(ctx context.Context, id string) (*models.Review, error) {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	var review models.Review
	if err := db.Where("id = ?", id).First(&review).Error; err != nil {
		return nil, notFound(err)
	}
	return &review, nil
}

func (s *ReviewService) Create(ctx context.Context, in ReviewInput, by Reviewer) (*models.Review, error) {
	if err := requireReviewFields(in); err != nil {
		return nil, err
	}
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	review := models.Review{
		ReviewedBy:   by.ID,
		ReviewerName: by.Name,
		Status:       models.ReviewStatusDraft,
		Answers:      []models.ReviewAnswer{},
	}
	if err := applyReviewInput(db, &review, in); err != nil {
		return nil, err
	}

	if err := db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

// Update applies a partial edit. Concurrent edits are last-write-wins.
func (s *ReviewService) Update(ctx context.Context, id string, in ReviewInput) (*models.Review, error) {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	var review models.Review
	if err := db.Where("id = ?", id).First(&review).Error; err != nil {
		return nil, notFound(err)
	}
	if err := applyReviewInput(db, &review, in); err != nil {
		return nil, err
	}
	if err := db.Save(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return &review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id string) error {
	db, err := s.pool.Ensure(ctx)
	if err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&models.Review{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func requireReviewFields(in ReviewInput) error {
	var missing []string
	for name, v := range map[string]*string{
		"zoneId":       in.ZoneID,
		"departmentId": in.DepartmentID,
		"reviewDate":   in.ReviewDate,
		"day":          in.Day,
		"venue":        in.Venue,
	} {
		if v == nil || strings.TrimSpace(*v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

func applyReviewInput(db *gorm.DB, review *models.Review, in ReviewInput) error {
	if in.ZoneID != nil && *in.ZoneID != review.ZoneID {
		review.ZoneID = *in.ZoneID
		if in.ZoneName == nil || strings.TrimSpace(*in.ZoneName) == "" {
			name, err := zoneName(db, review.ZoneID)
			if err != nil {
				return err
			}
			review.ZoneName = name
		}
	}
	if in.ZoneName != nil && strings.TrimSpace(*in.ZoneName) != "" {
		review.ZoneName = utils.SanitizeInput(*in.ZoneName)
	}
	if in.DepartmentID != nil && *in.DepartmentID != review.DepartmentID {
		review.DepartmentID = *in.DepartmentID
		if in.DepartmentName == nil || strings.TrimSpace(*in.DepartmentName) == "" {
			name, err := departmentName(db, review.DepartmentID)
			if err != nil {
				return err
			}
			review.DepartmentName = name
		}
	}
	if in.DepartmentName != nil && strings.TrimSpace(*in.DepartmentName) != "" {
		review.DepartmentName = utils.SanitizeInput(*in.DepartmentName)
	}
	if in.ReviewDate != nil {
		date, err := utils.ParseDate(*in.ReviewDate)
		if err != nil {
			return fmt.Errorf("%w: reviewDate: %v", ErrValidation, err)
		}
		review.ReviewDate = date
	}
	if in.Day != nil {
		review.Day = utils.SanitizeInput(*in.Day)
	}
	if in.Venue != nil {
		review.Venue = utils.SanitizeInput(*in.Venue)
	}
	if in.Aamil != nil {
		review.Aamil = optionalString(*in.Aamil)
	}
	if in.ZonalHead != nil {
		review.ZonalHead = optionalString(*in.ZonalHead)
	}
	if in.ZoneCapacity != nil {
		review.ZoneCapacity = in.ZoneCapacity
	}
	if in.MumineenCount != nil {
		review.MumineenCount = in.MumineenCount
	}
	if in.ThaalCount != nil {
		review.ThaalCount = in.ThaalCount
	}
	if in.Answers != nil {
		for i, a := range *in.Answers {
			if a.Rating != nil && (*a.Rating < 1 || *a.Rating > 5) {
				return fmt.Errorf("%w: answers[%d].rating must be between 1 and 5", ErrValidation, i)
			}
		}
		review.Answers = append([]models.ReviewAnswer{}, (*in.Answers)...)
	}
	if in.OverallNotes != nil {
		review.OverallNotes = optionalString(*in.OverallNotes)
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return ErrInvalidStatus
		}
		review.Status = *in.Status
	}
	return nil
}

func optionalString(s string) *string {
	s = utils.SanitizeInput(s)
	if s == "" {
		return nil
	}
	return &s
}
