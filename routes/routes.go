package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/arenahub/event-dashboard-backend/config"
	"github.com/arenahub/event-dashboard-backend/internal/event"
	"github.com/arenahub/event-dashboard-backend/internal/health"
	"github.com/arenahub/event-dashboard-backend/middleware"

	_ "github.com/arenahub/event-dashboard-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires repositories, services and handlers onto the router. The
// event endpoints follow the dashboard contract exactly; /health is the
// bearer-gated probe for the external cron service.
func Setup(r *gin.Engine, cfg *config.Config, db *gorm.DB, cache *redis.Client) {
	// Init repositories & services
	eventRepo := event.NewRepository(db)
	eventSvc := event.NewService(eventRepo, cache)
	eventHandler := event.NewHandler(eventSvc)

	healthHandler := health.NewHandler(db)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health probe for the external cron collaborator
	r.GET("/health", middleware.CronAuth(cfg.CronSecret), healthHandler.Check)

	api := r.Group("/")
	api.Use(middleware.RateLimiter())
	{
		eventRoutes := api.Group("/events")
		{
			eventRoutes.POST("", eventHandler.CreateEvent)
			eventRoutes.GET("", eventHandler.ListEvents)
			eventRoutes.GET("/export", eventHandler.ExportEvents)
			eventRoutes.GET("/:id", eventHandler.GetEventByID)
			eventRoutes.PUT("/:id", eventHandler.UpdateEvent)
			eventRoutes.DELETE("/:id", eventHandler.DeleteEvent)
		}
	}
}
