package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/qs3c/quiz_go_server/internal/pkg/response"
)

type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:  db,
		rdb: rdb,
	}
}

// Check 健康检查
// GET /api/health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if sqlDB, err := h.db.DB(); err != nil {
		dbStatus = "down"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "down"
	}

	redisStatus := "up"
	if h.rdb == nil || h.rdb.Ping(ctx).Err() != nil {
		redisStatus = "down"
	}

	response.Success(c, gin.H{
		"status": "ok",
		"db":     dbStatus,
		"redis":  redisStatus,
	})
}
