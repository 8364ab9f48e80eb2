package routes

import (
	"construction-tracker-api/controllers"
	"construction-tracker-api/middleware"

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

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Construction Tracker API is running",
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

			// Projects
			projects := protected.Group("/projects")
			{
				projects.GET("", controllers.GetProjects)
				projects.POST("", controllers.CreateProject)
				projects.GET("/:id", controllers.GetProject)
				projects.PUT("/:id", controllers.UpdateProject)
				projects.DELETE("/:id", controllers.DeleteProject)

				// Per-project collections
				projects.GET("/:id/materials", controllers.GetMaterials)
				projects.POST("/:id/materials", controllers.CreateMaterial)
				projects.GET("/:id/labor", controllers.GetLaborEntries)
				projects.POST("/:id/labor", controllers.CreateLaborEntry)
				projects.GET("/:id/labor-summary", controllers.GetLaborSummary)
				projects.GET("/:id/photos", controllers.GetPhotos)
				projects.POST("/:id/photos", controllers.UploadPhoto)
				projects.GET("/:id/timeline", controllers.GetActivityLog)

				// Exports
				projects.GET("/:id/export/excel", controllers.ExportMaterialsExcel)
				projects.GET("/:id/export/pdf", controllers.ExportProjectPDF)
			}

			// Materials
			materials := protected.Group("/materials")
			{
				materials.PUT("/:id", controllers.UpdateMaterial)
				materials.PUT("/:id/usage", controllers.UpdateMaterialUsage)
				materials.DELETE("/:id", controllers.DeleteMaterial)

				// Receipts
				materials.POST("/:id/receipts", controllers.UploadReceipt)
				materials.GET("/:id/receipts", controllers.GetReceipts)
			}

			// Labor entries
			labor := protected.Group("/labor")
			{
				labor.PUT("/:id", controllers.UpdateLaborEntry)
				labor.DELETE("/:id", controllers.DeleteLaborEntry)
			}

			// Receipts
			receipts := protected.Group("/receipts")
			{
				receipts.GET("/:id/download", controllers.DownloadReceipt)
				receipts.PUT("/:id/primary", controllers.SetPrimaryReceipt)
				receipts.DELETE("/:id", controllers.DeleteReceipt)
			}

			// Photos
			photos := protected.Group("/photos")
			{
				photos.GET("/:id/download", controllers.DownloadPhoto)
				photos.DELETE("/:id", controllers.DeletePhoto)
			}

			// Budget alerts
			alerts := protected.Group("/alerts")
			{
				alerts.GET("", controllers.GetAlerts)
				alerts.POST("/:id/read", controllers.MarkAlertRead)
				alerts.POST("/read-all", controllers.MarkAllAlertsRead)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
				dashboard.GET("/timeline", controllers.GetSpendingTimeline)
			}

			// Reference data
			protected.GET("/material-categories", controllers.GetMaterialCategories)
			protected.POST("/material-categories", controllers.CreateMaterialCategory)
			protected.DELETE("/material-categories/:id", controllers.DeleteMaterialCategory)

			protected.GET("/labor-categories", controllers.GetLaborCategories)
			protected.POST("/labor-categories", controllers.CreateLaborCategory)
			protected.DELETE("/labor-categories/:id", controllers.DeleteLaborCategory)

			protected.GET("/units", controllers.GetUnits)
			protected.POST("/units", controllers.CreateUnit)
			protected.DELETE("/units/:id", controllers.DeleteUnit)

			protected.GET("/material-catalog", controllers.GetMaterialCatalog)
		}
	}
}
