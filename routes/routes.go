package routes

import (
	"document-flow-api/controllers"
	"document-flow-api/middleware"
	"document-flow-api/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Document Flow API is running",
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

			// Reference data
			protected.GET("/departments", controllers.GetDepartments)
			protected.GET("/departments/:id", controllers.GetDepartment)
			protected.GET("/document-types", controllers.GetDocumentTypes)

			// Admin-managed reference data
			admin := protected.Group("", middleware.RequireRole(services.RoleAdmin))
			{
				admin.POST("/departments", controllers.CreateDepartment)
				admin.PUT("/departments/:id", controllers.UpdateDepartment)
				admin.DELETE("/departments/:id", controllers.DeleteDepartment)

				admin.POST("/document-types", controllers.CreateDocumentType)
				admin.DELETE("/document-types/:id", controllers.DeleteDocumentType)

				admin.POST("/users", controllers.CreateUser)
				admin.PUT("/users/:id", controllers.UpdateUser)
				admin.DELETE("/users/:id", controllers.DeleteUser)
			}

			protected.GET("/users", controllers.GetUsers)
			protected.GET("/users/:id", controllers.GetUser)

			// Documents (non-workflow reads and attachments)
			documents := protected.Group("/documents")
			{
				documents.GET("", controllers.GetDocuments)
				documents.GET("/:id", controllers.GetDocument)
				documents.GET("/:id/attachments", controllers.GetDocumentAttachments)
				documents.POST("/:id/attachments", controllers.UploadDocumentAttachment)
				documents.GET("/attachments/:attachment_id/download", controllers.DownloadAttachment)
			}

			// Document register export (clerk's sổ văn bản)
			protected.GET("/documents-register/export",
				middleware.RequireRole(services.RoleVanThu, services.RoleAdmin),
				controllers.ExportDocumentRegister)

			// Workflow engine
			wf := protected.Group("/workflow")
			{
				wf.POST("/documents/incoming/full", controllers.CreateFullIncomingDocument)
				wf.POST("/documents/outgoing", controllers.CreateStandaloneOutgoingDocument)

				wf.POST("/documents/:id/register", controllers.RegisterIncomingDocument)
				wf.POST("/documents/:id/publish", controllers.PublishOutgoingDocument)
				wf.POST("/documents/:id/distribute", controllers.DistributeDocument)
				wf.POST("/documents/:id/assign", controllers.AssignDocument)
				wf.POST("/documents/:id/assign-specialist", controllers.AssignToSpecialist)
				wf.POST("/documents/:id/forward-leadership", controllers.ForwardToLeadership)
				wf.POST("/documents/:id/start-processing", controllers.StartProcessingDocument)
				wf.POST("/documents/:id/submit-leadership", controllers.SubmitToLeadership)
				wf.POST("/documents/:id/start-review", controllers.StartReviewingDocument)
				wf.POST("/documents/:id/feedback", controllers.ProvideDocumentFeedback)
				wf.POST("/documents/:id/approve", controllers.ApproveDocument)
				wf.POST("/documents/:id/reject", controllers.RejectDocumentWithAttachment)

				wf.POST("/documents/:id/header-department/start-review", controllers.StartHeaderDepartmentReviewing)
				wf.POST("/documents/:id/header-department/comment", controllers.CommentHeaderDepartment)
				wf.POST("/documents/:id/header-department/approve", controllers.ApproveHeaderDepartment)

				wf.POST("/documents/:id/format-correction", controllers.RejectForFormatCorrection)
				wf.POST("/documents/:id/resubmit", controllers.ResubmitAfterFormatCorrection)

				wf.POST("/documents/:id/status", controllers.ChangeDocumentStatus)
				wf.GET("/documents/:id/can-change-status", controllers.CanChangeDocumentStatus)
				wf.GET("/documents/:id/status", controllers.GetDocumentStatus)
				wf.GET("/documents/:id/history", controllers.GetDocumentHistory)
				wf.GET("/documents/:id/assignees", controllers.GetDocumentAssignees)
				wf.GET("/documents/:id/departments", controllers.GetDocumentDepartments)
			}

			// Work schedules
			schedules := protected.Group("/schedules")
			{
				schedules.GET("", controllers.GetSchedules)
				schedules.POST("", controllers.CreateSchedule)
				schedules.PUT("/:id", controllers.UpdateSchedule)
				schedules.DELETE("/:id", controllers.DeleteSchedule)
			}

			// Dashboard
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)
		}
	}
}
