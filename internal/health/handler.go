package health

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arenahub/event-dashboard-backend/internal/apperrors"
)

// Handler answers the external cron collaborator's reachability probe.
type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// Status is the probe payload. Deliberately not wrapped in the API envelope,
// the cron service consumes it as-is.
type Status struct {
	Server       string `json:"server"`
	Database     string `json:"database"`
	Timestamp    string `json:"timestamp"`
	ResponseTime int64  `json:"responseTime"` // milliseconds
	Error        string `json:"error,omitempty"`
}

// ===========================
// 🩺 Health Check - GET /health
func (h *Handler) Check(c *gin.Context) {
	start := time.Now()
	status := Status{
		Server:    "up",
		Database:  "unknown",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	var one int
	if err := h.DB.WithContext(c.Request.Context()).Raw("SELECT 1").Scan(&one).Error; err != nil {
		log.Printf("❌ Database health check failed: %v", err)
		status.Database = "down"
		status.Error = apperrors.ClassifyPostgres(err).Error()
		status.ResponseTime = time.Since(start).Milliseconds()
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}

	status.Database = "up"
	status.ResponseTime = time.Since(start).Milliseconds()
	c.JSON(http.StatusOK, status)
}
