package routes

import (
	"study-abroad-api/controllers"
	"study-abroad-api/middleware"

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
			public.POST("/register", controllers.Register)
			public.POST("/login", controllers.Login)

			// University catalog is browsable without an account
			public.GET("/universities", controllers.GetUniversities)
			public.GET("/universities/:id", controllers.GetUniversity)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Study Abroad API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/profile", controllers.UpdateProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Applications
			applications := protected.Group("/applications")
			{
				applications.GET("", controllers.GetApplications)
				applications.GET("/:id", controllers.GetApplication)
				applications.POST("", controllers.CreateApplication)
				applications.GET("/:id/balance", controllers.GetBalance)
				applications.GET("/:id/documents", controllers.GetDocuments)
				applications.POST("/:id/documents", controllers.UploadDocument)

				// Admin-only lifecycle operations
				applications.PUT("/:id/status", middleware.RequireAdmin(), controllers.UpdateApplicationStatus)
				applications.POST("/:id/reject", middleware.RequireAdmin(), controllers.RejectApplication)
				applications.POST("/:id/university", middleware.RequireAdmin(), controllers.AssignUniversity)
				applications.DELETE("/:id", middleware.RequireAdmin(), controllers.DeleteApplication)
			}

			// Documents
			documents := protected.Group("/documents")
			{
				documents.GET("/pending", middleware.RequireAdmin(), controllers.GetPendingDocuments)
				documents.PUT("/:document_id/verify", middleware.RequireAdmin(), controllers.VerifyDocument)
			}

			// Payments
			payments := protected.Group("/payments")
			{
				payments.GET("/mine", controllers.GetMyPayments)
				payments.GET("", middleware.RequireAdmin(), controllers.GetPayments)
				payments.POST("", middleware.RequireAdmin(), controllers.RecordPayment)
				payments.DELETE("/:payment_id", middleware.RequireAdmin(), controllers.DeletePayment)
			}

			// Fee schedule
			fees := protected.Group("/fees")
			{
				fees.GET("", controllers.GetFees)
				fees.PUT("", middleware.RequireAdmin(), controllers.UpsertFee)
				fees.DELETE("/:fee_id", middleware.RequireAdmin(), controllers.DeleteFee)
			}

			// Messaging
			conversations := protected.Group("/conversations")
			{
				conversations.GET("", controllers.GetConversations)
				conversations.POST("", middleware.RequireAdmin(), controllers.CreateConversation)
				conversations.GET("/:id", controllers.GetMessages)
				conversations.POST("/:id/messages", controllers.PostMessage)
			}

			// Admin area
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/dashboard", controllers.GetDashboardStats)
				admin.GET("/activities", controllers.GetActivities)
				admin.GET("/students", controllers.GetStudents)
				admin.GET("/students/:id", controllers.GetStudent)
				admin.PUT("/users/:id/role", controllers.UpdateUserRole)
				admin.DELETE("/users/:id", controllers.DeleteUser)

				admin.POST("/universities", controllers.CreateUniversity)
				admin.PUT("/universities/:id", controllers.UpdateUniversity)
				admin.DELETE("/universities/:id", controllers.DeleteUniversity)
			}
		}
	}
}
