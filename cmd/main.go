package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/arenahub/event-dashboard-backend/config"
	"github.com/arenahub/event-dashboard-backend/database"
	"github.com/arenahub/event-dashboard-backend/internal/event"
	"github.com/arenahub/event-dashboard-backend/middleware"
	"github.com/arenahub/event-dashboard-backend/routes"
	"github.com/arenahub/event-dashboard-backend/utils"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(&event.Event{}); err != nil {
		log.Fatalf("❌ DB AutoMigrate failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// Fail fast on drift instead of diagnosing it from a failed query later
	if err := database.VerifySchema(db); err != nil {
		log.Fatalf("❌ Schema verification failed: %v", err)
	}

	// Optional event read cache
	cache := utils.NewRedisClient(cfg)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, db, cache)

	log.Printf("🚀 Event dashboard API listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server exited: %v", err)
	}
}
