package controllers

import (
	"context"
	"net/http"

	"pmo-review-api/models"
	"pmo-review-api/services"

	"github.com/gin-gonic/gin"
)

type ReviewStore interface {
	List(ctx context.Context, status string) ([]models.Review, error)
	Get(ctx context.Context, id string) (*models.Review, error)
	Create(ctx context.Context, in services.ReviewInput, by services.Reviewer) (*models.Review, error)
	Update(ctx context.Context, id string, in services.ReviewInput) (*models.Review, error)
	Delete(ctx context.Context, id string) error
}

type ReviewController struct {
	store ReviewStore
}

func NewReviewController(store ReviewStore) *ReviewController {
	return &ReviewController{store: store}
}

func (rc *ReviewController) List(c *gin.Context) {
	reviews, err := rc.store.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err, "Review")
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

func (rc *ReviewController) Get(c *gin.Context) {
	review, err := rc.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Review")
		return
	}
	c.JSON(http.StatusOK, review)
}

// Create stores a review attributed to the session user. reviewedBy and
// reviewerName in the body are ignored.
func (rc *ReviewController) Create(c *gin.Context) {
	var in services.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	review, err := rc.store.Create(c.Request.Context(), in, currentReviewer(c))
	if err != nil {
		respondError(c, err, "Review")
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (rc *ReviewController) Update(c *gin.Context) {
	var in services.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	review, err := rc.store.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "Review")
		return
	}
	c.JSON(http.StatusOK, review)
}

func (rc *ReviewController) Delete(c *gin.Context) {
	if err := rc.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Review")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
