package routes

import (
	"pmo-review-api/controllers"
	"pmo-review-api/middleware"
	"pmo-review-api/models"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Auth        *controllers.AuthController
	Zones       *controllers.ReferenceController[models.Zone]
	Departments *controllers.ReferenceController[models.Department]
	Questions   *controllers.QuestionController
	Reviews     *controllers.ReviewController
	Reports     *controllers.ReportController
}

// SetupRoutes mounts the API under /api/v1. auth guards every route except
// login and health.
func SetupRoutes(router *gin.Engine, auth gin.HandlerFunc, ctl Controllers) {
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", ctl.Auth.Login)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "PMO Review API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(auth)
		{
			protected.GET("/profile", ctl.Auth.GetProfile)
			protected.PUT("/change-password", ctl.Auth.ChangePassword)

			adminOnly := middleware.RequireRole(models.RoleAdmin)

			zones := protected.Group("/zones")
			{
				zones.GET("", ctl.Zones.List)
				zones.GET("/:id", ctl.Zones.Get)
				zones.POST("", adminOnly, ctl.Zones.Create)
				zones.PUT("/:id", adminOnly, ctl.Zones.Update)
				zones.DELETE("/:id", adminOnly, ctl.Zones.Delete)
			}

			departments := protected.Group("/departments")
			{
				departments.GET("", ctl.Departments.List)
				departments.GET("/:id", ctl.Departments.Get)
				departments.POST("", adminOnly, ctl.Departments.Create)
				departments.PUT("/:id", adminOnly, ctl.Departments.Update)
				departments.DELETE("/:id", adminOnly, ctl.Departments.Delete)
			}

			questions := protected.Group("/questions")
			{
				questions.GET("", ctl.Questions.List)
				questions.GET("/:id", ctl.Questions.Get)
				questions.POST("", adminOnly, ctl.Questions.Create)
				questions.PUT("/:id", adminOnly, ctl.Questions.Update)
				questions.DELETE("/:id", adminOnly, ctl.Questions.Delete)
			}

			// Viewers are read-only; only admins delete.
			canReview := middleware.RequireRole(models.RoleAdmin, models.RoleReviewer)
			reviews := protected.Group("/reviews")
			{
				reviews.GET("", ctl.Reviews.List)
				reviews.GET("/:id", ctl.Reviews.Get)
				reviews.POST("", canReview, ctl.Reviews.Create)
				reviews.PUT("/:id", canReview, ctl.Reviews.Update)
				reviews.DELETE("/:id", adminOnly, ctl.Reviews.Delete)
			}

			reports := protected.Group("/reports", adminOnly)
			{
				reports.POST("/summarize", ctl.Reports.Summarize)
				reports.POST("/export", ctl.Reports.Export)
				reports.POST("/email", ctl.Reports.Email)
			}
		}
	}
}
