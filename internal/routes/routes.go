package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"careconnect-server/internal/assignment"
	"careconnect-server/internal/config"
	"careconnect-server/internal/handlers"
	"careconnect-server/internal/middleware"
	"careconnect-server/internal/storage"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger, store *storage.FileStore) {
	selector := assignment.NewSelector(db, log)

	authHandler := handlers.NewAuthHandler(db, cfg, log)
	dashboardHandler := handlers.NewDashboardHandler(db, log)
	requestHandler := handlers.NewRequestHandler(db, selector, log)
	sessionHandler := handlers.NewSessionHandler(db, log)
	documentHandler := handlers.NewDocumentHandler(db, store, log, cfg.MaxUploadBytes)

	api := router.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/check-email", authHandler.CheckEmail)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)

		api.GET("/dashboard/:userId", dashboardHandler.GetDashboard)

		api.POST("/request-doctor", requestHandler.RequestDoctor)
		api.GET("/doctor-requests/:doctorId", requestHandler.GetDoctorRequests)

		api.POST("/upload-document", documentHandler.UploadDocument)
		api.GET("/documents/:patientId", documentHandler.GetDocuments)

		// Session transitions are new surface and require a token.
		sessions := api.Group("/sessions")
		sessions.Use(middleware.AuthMiddleware(cfg))
		{
			sessions.GET("/:userId", sessionHandler.GetSessionsForUser)
			sessions.POST("/:sessionId/activate", sessionHandler.ActivateSession)
			sessions.POST("/:sessionId/complete", sessionHandler.CompleteSession)
			sessions.POST("/:sessionId/cancel", sessionHandler.CancelSession)
		}
	}

	// Stored documents are served directly, as the original app did.
	router.Static("/uploads/medical-documents", store.Dir())

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
