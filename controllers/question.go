package controllers

import (
	"context"
	"net/http"

	"pmo-review-api/models"
	"pmo-review-api/services"

	"github.com/gin-gonic/gin"
)

type QuestionStore interface {
	ListActive(ctx context.Context, departmentID string) ([]models.Question, error)
	Get(ctx context.Context, id string) (*models.Question, error)
	Create(ctx context.Context, in services.QuestionInput) (*models.Question, error)
	Update(ctx context.Context, id string, in services.QuestionInput) (*models.Question, error)
	Delete(ctx context.Context, id string) error
}

type QuestionController struct {
	store QuestionStore
}

func NewQuestionController(store QuestionStore) *QuestionController {
	return &QuestionController{store: store}
}

// List returns active questions, filtered by ?departmentId when given.
func (qc *QuestionController) List(c *gin.Context) {
	questions, err := qc.store.ListActive(c.Request.Context(), c.Query("departmentId"))
	if err != nil {
		respondError(c, err, "Question")
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}
	c.JSON(http.StatusOK, questions)
}

func (qc *QuestionController) Get(c *gin.Context) {
	q, err := qc.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Question")
		return
	}
	c.JSON(http.StatusOK, q)
}

func (qc *QuestionController) Create(c *gin.Context) {
	var in services.QuestionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q, err := qc.store.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Question")
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (qc *QuestionController) Update(c *gin.Context) {
	var in services.QuestionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q, err := qc.store.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "Question")
		return
	}
	c.JSON(http.StatusOK, q)
}

func (qc *QuestionController) Delete(c *gin.Context) {
	if err := qc.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Question")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
