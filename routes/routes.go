package routes

import (
	"journal-portal-api/controllers"
	"journal-portal-api/middleware"
	"journal-portal-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Journal Portal API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Journal structure (all authenticated users)
			protected.GET("/sections", controllers.ListSections)
			protected.GET("/issues", controllers.ListIssues)
			protected.GET("/issues/:id", controllers.GetIssue)
			protected.GET("/articles", controllers.ListArticles)
			protected.GET("/articles/:id", controllers.GetArticle)

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.ListMyNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}

			// Authoring workflow
			submissions := protected.Group("/submissions")
			{
				submissions.GET("", controllers.ListMySubmissions)
				submissions.POST("", controllers.CreateSubmission)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.PUT("/:id", controllers.UpdateSubmission)
				submissions.PUT("/:id/metadata", controllers.UpdateSubmissionMetadata)
				submissions.GET("/:id/readiness", controllers.GetSubmissionReadiness)
				submissions.GET("/:id/history", controllers.GetSubmissionHistory)

				submissions.POST("/:id/manuscript", controllers.UploadManuscript)
				submissions.POST("/:id/files", controllers.UploadSubmissionFile)

				submissions.GET("/:id/authors", controllers.ListSubmissionAuthors)
				submissions.POST("/:id/authors", controllers.AddSubmissionAuthor)
				submissions.DELETE("/:id/authors/:authorId", controllers.RemoveSubmissionAuthor)

				submissions.POST("/:id/submit", controllers.SubmitSubmission)
				submissions.POST("/:id/withdraw", controllers.WithdrawSubmission)
				submissions.POST("/:id/resubmit", controllers.ResubmitSubmission)
			}

			// Reviewer workflow
			reviewer := protected.Group("/review")
			reviewer.Use(middleware.RequireRole(models.RoleReviewer, models.RoleEditor, models.RoleAdmin))
			{
				reviewer.GET("/assignments", controllers.ListMyAssignments)
				reviewer.POST("/assignments/:id/accept", controllers.AcceptAssignment)
				reviewer.POST("/assignments/:id/decline", controllers.DeclineAssignment)
				reviewer.GET("/reviews/:id", controllers.GetMyReview)
				reviewer.PUT("/reviews/:id", controllers.SaveReviewDraft)
				reviewer.POST("/reviews/:id/complete", controllers.CompleteReview)
			}

			// Editorial office
			editor := protected.Group("/editor")
			editor.Use(middleware.RequirePrivileged())
			{
				editor.GET("/queue", controllers.ListEditorQueue)
				editor.GET("/dashboard", controllers.GetEditorDashboard)
				editor.GET("/overdue-reviews", controllers.ListOverdueAssignments)

				editor.POST("/submissions/:id/reviewers", controllers.AssignReviewer)
				editor.GET("/submissions/:id/reviews", controllers.ListSubmissionReviews)
				editor.POST("/submissions/:id/reopen-review", controllers.ReopenReview)
				editor.PUT("/submissions/:id/editor", controllers.AssignEditor)
				editor.POST("/submissions/:id/decision", controllers.RecordDecision)
				editor.GET("/submissions/:id/decisions", controllers.ListSubmissionDecisions)
				editor.POST("/submissions/:id/publish", controllers.MaterializeSubmission)

				editor.POST("/issues", controllers.CreateIssue)
				editor.POST("/issues/:id/publish", controllers.PublishIssue)
			}
		}
	}
}
