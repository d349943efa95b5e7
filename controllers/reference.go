package controllers

import (
	"context"
	"net/http"

	"pmo-review-api/services"

	"github.com/gin-gonic/gin"
)

// ReferenceStore is the CRUD surface shared by zones and departments.
type ReferenceStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, name string, description *string) (*T, error)
	Update(ctx context.Context, id string, in services.ReferenceInput) (*T, error)
	Delete(ctx context.Context, id string) error
}

type ReferenceController[T any] struct {
	store  ReferenceStore[T]
	entity string
}

// NewReferenceController serves one reference collection. entity is the
// singular display name used in error messages.
func NewReferenceController[T any](store ReferenceStore[T], entity string) *ReferenceController[T] {
	return &ReferenceController[T]{store: store, entity: entity}
}

type referenceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

func (rc *ReferenceController[T]) List(c *gin.Context) {
	items, err := rc.store.List(c.Request.Context())
	if err != nil {
		respondError(c, err, rc.entity)
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

func (rc *ReferenceController[T]) Get(c *gin.Context) {
	item, err := rc.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, rc.entity)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (rc *ReferenceController[T]) Create(c *gin.Context) {
	var req referenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := rc.store.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(c, err, rc.entity)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (rc *ReferenceController[T]) Update(c *gin.Context) {
	var in services.ReferenceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := rc.store.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, rc.entity)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (rc *ReferenceController[T]) Delete(c *gin.Context) {
	if err := rc.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, rc.entity)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": rc.entity + " deleted successfully"})
}
