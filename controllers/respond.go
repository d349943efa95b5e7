package controllers

import (
	"errors"
	"net/http"

	"pmo-review-api/middleware"
	"pmo-review-api/services"

	"github.com/gin-gonic/gin"
)

// respondError maps store errors onto HTTP responses. entity names the
// resource in 404 and 409 messages, e.g. "Zone".
func respondError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
	case errors.Is(err, services.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": entity + " name already exists"})
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidReference),
		errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func currentReviewer(c *gin.Context) services.Reviewer {
	return services.Reviewer{
		ID:   c.GetString(middleware.UserIDKey),
		Name: c.GetString(middleware.NameKey),
	}
}
