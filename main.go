package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"careconnect-server/internal/config"
	"careconnect-server/internal/logger"
	"careconnect-server/internal/models"
	"careconnect-server/internal/routes"
	"careconnect-server/internal/storage"
)

func main() {
	// Load environment variables; a missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format, "careconnect-server")
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer zl.Sync()

	db, err := models.InitDB(cfg.Database.DSN)
	if err != nil {
		zl.Fatal("database connection failed", zap.Error(err))
	}

	store, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		zl.Fatal("upload directory setup failed", zap.Error(err))
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, db, cfg, zl, store)

	zl.Info("server listening", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		zl.Fatal("server failed", zap.Error(err))
	}
}
