package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Payphone-Digital/property-api/internal/constants"
	"github.com/Payphone-Digital/property-api/internal/dto"
	"github.com/Payphone-Digital/property-api/pkg/redis"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
	start time.Time
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redisClient,
		start: time.Now(),
	}
}

// Check handles GET /health. Reports degraded with a 503 when the database
// is unreachable; redis being down only flags its component.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK
	components := gin.H{}

	dbStatus := "up"
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}
	components["database"] = dbStatus

	if h.redis.Enabled() {
		redisStatus := "up"
		if pingErr := h.redis.Ping(ctx); pingErr != nil {
			redisStatus = "down"
		}
		components["redis"] = redisStatus
	} else {
		components["redis"] = "disabled"
	}

	payload := gin.H{
		"version":    constants.AppVersion,
		"uptime":     time.Since(h.start).Round(time.Second).String(),
		"components": components,
	}

	if status == http.StatusOK {
		c.JSON(status, dto.SuccessResponse(payload, "healthy"))
		return
	}
	c.JSON(status, dto.ErrorResponse("degraded"))
}
